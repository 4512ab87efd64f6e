package orderrepo

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormItemRepository implements ports.ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// UpdateStatus sets the status of one item. The station is only written when
// given; timestamps are filled in once. Items already past status keep their
// row untouched.
func (r *GormItemRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	status order.ItemStatus,
	station string,
	at time.Time,
) error {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return err
	}

	updates := map[string]any{"status": status.String()}
	if station != "" {
		updates["station"] = station
	}
	switch status {
	case order.ItemPreparing:
		updates["preparing_at"] = gorm.Expr("COALESCE(preparing_at, ?)", at)
	case order.ItemReady, order.ItemServed:
		updates["preparing_at"] = gorm.Expr("COALESCE(preparing_at, ?)", at)
		updates["ready_at"] = gorm.Expr("COALESCE(ready_at, ?)", at)
	}

	from := make([]string, 0, 4)
	for _, st := range status.Predecessors() {
		from = append(from, st.String())
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ? AND status IN ?", id.Bytes(), from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundUnlessExists(ctx, r.db, &ItemDTO{}, "item", id)
	}

	return nil
}
