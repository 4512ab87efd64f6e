package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each mutation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a transaction boundary around order and item writes.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository

	// ItemRepository returns a repository bound to the current transaction.
	ItemRepository() ItemRepository
}
