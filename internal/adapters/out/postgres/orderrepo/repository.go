package orderrepo

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withItems(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActive retrieves confirmed, preparing and ready orders, oldest first.
func (r *GormOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	active := make([]string, 0, 3)
	for _, s := range order.ActiveStatuses() {
		active = append(active, s.String())
	}

	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("status IN ?", active).
		Order("submitted_at ASC").
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatus sets the status of an order. preparing_at is filled in on the
// way to preparing or ready and never overwritten. An order that has already
// moved past status is left alone: the write was superseded and is dropped
// without error.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return err
	}

	updates := map[string]any{"status": status.String()}
	switch status {
	case order.Confirmed:
		updates["confirmed_at"] = gorm.Expr("COALESCE(confirmed_at, ?)", at)
	case order.Preparing, order.Ready:
		updates["preparing_at"] = gorm.Expr("COALESCE(preparing_at, ?)", at)
	}

	from := make([]string, 0, 4)
	for _, st := range status.Predecessors() {
		from = append(from, st.String())
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status IN ?", id.Bytes(), from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundUnlessExists(ctx, r.db, &OrderDTO{}, "order", id)
	}

	return nil
}

// notFoundUnlessExists tells a missing row from a guarded update that matched
// nothing.
func notFoundUnlessExists(ctx context.Context, db *gorm.DB, model any, entity string, id kernel.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
