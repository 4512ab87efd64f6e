// Package ports defines the contracts between the kitchen core and the
// outside world: the order store, the change feed and the side effects fired
// by transitions.
package ports

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActive returns every order in Confirmed, Preparing or Ready status with
	// its items, ordered by submission time ascending.
	GetActive(ctx context.Context) ([]*order.Order, error)

	// UpdateStatus sets the status of one order. at is written to the
	// timestamp column belonging to status only when that column is still
	// empty, so repeating the call is harmless.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error
}

// ItemRepository defines the persistence contract for single items.
type ItemRepository interface {
	// UpdateStatus sets the status of one item. station is written when not
	// empty; timestamps follow the same set-once rule as orders.
	UpdateStatus(ctx context.Context, id kernel.UUID, status order.ItemStatus, station string, at time.Time) error
}

// SnapshotLoader reads the authoritative set of active orders.
type SnapshotLoader interface {
	Load(ctx context.Context) ([]*order.Order, error)
}
