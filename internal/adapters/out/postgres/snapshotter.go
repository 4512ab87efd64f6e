package postgres

import (
	"context"

	"kitchen/internal/adapters/out/postgres/orderrepo"
	"kitchen/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// Snapshotter loads the active orders outside of any transaction. It
// implements ports.SnapshotLoader.
type Snapshotter struct {
	repo *orderrepo.GormOrderRepository
}

func NewSnapshotter(db *gorm.DB) *Snapshotter {
	return &Snapshotter{repo: orderrepo.NewGormOrderRepository(db)}
}

func (s *Snapshotter) Load(ctx context.Context) ([]*order.Order, error) {
	return s.repo.GetActive(ctx)
}
