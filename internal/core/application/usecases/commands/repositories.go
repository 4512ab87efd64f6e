// Package commands contains operations that change kitchen state. Order intake
// goes through a transaction on the store; transitions and key presses go
// through the terminal's coordinator, which applies them optimistically.
package commands

import (
	"context"

	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// Terminal is the part of the coordinator commands drive.
	Terminal interface {
		TransitionOrder(id kernel.UUID, target order.Status) error
		TransitionItem(orderID, itemID kernel.UUID, target order.ItemStatus, station string) error
		Dispatch(symbol string) (kitchen.Action, error)
		Toggle(t kitchen.Toggle) (kitchen.Preferences, error)
	}
)
