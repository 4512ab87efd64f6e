// Package orderrepo provides data transfer objects and mapping functions for
// order and item persistence. Statuses are stored by name so other writers
// (wait staff tools, point of sale) can share the tables.
package orderrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCode       string    `gorm:"not null"`
	CustomerName    string
	TableNumber     string
	ConsumptionType string     `gorm:"not null"`
	Status          string     `gorm:"not null;index:idx_orders_status_submitted,priority:1"`
	SessionID       string     `gorm:"index"`
	SubmittedAt     time.Time  `gorm:"not null;index:idx_orders_status_submitted,priority:2"`
	ConfirmedAt     *time.Time
	PreparingAt     *time.Time
	CustomerNotes   string
	Items           []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one row of order_items.
type ItemDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position            int            `gorm:"not null"`
	Name                string         `gorm:"not null"`
	Quantity            int            `gorm:"not null"`
	Extras              pq.StringArray `gorm:"type:text[]"`
	SpecialInstructions string
	Status              string `gorm:"not null"`
	Station             string
	PreparingAt         *time.Time
	ReadyAt             *time.Time
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	st := o.State()

	items := make([]ItemDTO, 0, len(st.Items))
	for i, it := range st.Items {
		items = append(items, ItemDTO{
			ID:                  it.ID.Bytes(),
			OrderID:             st.ID.Bytes(),
			Position:            i,
			Name:                it.Name,
			Quantity:            it.Quantity,
			Extras:              pq.StringArray(it.Extras),
			SpecialInstructions: it.Instructions,
			Status:              it.Status.String(),
			Station:             it.Station,
			PreparingAt:         it.PreparingAt,
			ReadyAt:             it.ReadyAt,
		})
	}

	return OrderDTO{
		ID:              st.ID.Bytes(),
		OrderCode:       st.Code,
		CustomerName:    st.CustomerName,
		TableNumber:     st.Table,
		ConsumptionType: st.Mode.String(),
		Status:          st.Status.String(),
		SessionID:       st.SessionID,
		SubmittedAt:     st.SubmittedAt,
		ConfirmedAt:     st.ConfirmedAt,
		PreparingAt:     st.PreparingAt,
		CustomerNotes:   st.Notes,
		Items:           items,
	}
}

// toDomain rebuilds the aggregate. Items must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParseConsumptionMode(dto.ConsumptionType)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemState, 0, len(dto.Items))
	for _, it := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(it.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		itemStatus, statusErr := order.ParseItemStatus(it.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		items = append(items, order.ItemState{
			ID:           itemID,
			OrderID:      id,
			Name:         it.Name,
			Quantity:     it.Quantity,
			Extras:       []string(it.Extras),
			Instructions: it.SpecialInstructions,
			Status:       itemStatus,
			Station:      it.Station,
			PreparingAt:  it.PreparingAt,
			ReadyAt:      it.ReadyAt,
		})
	}

	return order.RestoreOrder(order.OrderState{
		ID:           id,
		Code:         dto.OrderCode,
		CustomerName: dto.CustomerName,
		Table:        dto.TableNumber,
		Mode:         mode,
		Status:       status,
		SessionID:    dto.SessionID,
		SubmittedAt:  dto.SubmittedAt,
		ConfirmedAt:  dto.ConfirmedAt,
		PreparingAt:  dto.PreparingAt,
		Notes:        dto.CustomerNotes,
		Items:        items,
	})
}
