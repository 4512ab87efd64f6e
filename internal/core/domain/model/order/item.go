package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
)

// ItemState is the full, exported representation of an item. It is used to
// restore items from persistence and to hand read models out of the aggregate.
type ItemState struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Name         string
	Quantity     int
	Extras       []string
	Instructions string
	Status       ItemStatus
	Station      string
	PreparingAt  *time.Time
	ReadyAt      *time.Time
}

// Item is one line of an order. Items are owned by their Order and only
// change through Order.Advance and Order.AdvanceItem.
type Item struct {
	id           kernel.UUID
	orderID      kernel.UUID
	name         string
	quantity     int
	extras       []string
	instructions string
	status       ItemStatus
	station      string
	preparingAt  *time.Time
	readyAt      *time.Time
}

// NewItem builds a pending item for orderID with a fresh id.
func NewItem(orderID kernel.UUID, name string, quantity int, extras ...string) (*Item, error) {
	return RestoreItem(ItemState{
		ID:       kernel.NewUUID(),
		OrderID:  orderID,
		Name:     name,
		Quantity: quantity,
		Extras:   extras,
		Status:   ItemPending,
	})
}

// RestoreItem rebuilds an item from its state after validating it.
func RestoreItem(state ItemState) (*Item, error) {
	var quantityErr error
	if state.Quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", state.Quantity))
	}
	var nameErr error
	if state.Name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}

	if err := errors.Join(
		state.ID.Validate(),
		state.OrderID.Validate(),
		nameErr,
		quantityErr,
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Item{
		id:           state.ID,
		orderID:      state.OrderID,
		name:         state.Name,
		quantity:     state.Quantity,
		extras:       slices.Clone(state.Extras),
		instructions: state.Instructions,
		status:       state.Status,
		station:      state.Station,
		preparingAt:  cloneTime(state.PreparingAt),
		readyAt:      cloneTime(state.ReadyAt),
	}, nil
}

func (i *Item) ID() kernel.UUID      { return i.id }
func (i *Item) OrderID() kernel.UUID { return i.orderID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Quantity() int        { return i.quantity }
func (i *Item) Extras() []string     { return slices.Clone(i.extras) }
func (i *Item) Instructions() string { return i.instructions }
func (i *Item) Status() ItemStatus   { return i.status }

// Station is the preparation area that last claimed the item, empty if none.
func (i *Item) Station() string { return i.station }

func (i *Item) PreparingAt() *time.Time { return cloneTime(i.preparingAt) }
func (i *Item) ReadyAt() *time.Time     { return cloneTime(i.readyAt) }

// State returns a deep copy of the item.
func (i *Item) State() ItemState {
	return ItemState{
		ID:           i.id,
		OrderID:      i.orderID,
		Name:         i.name,
		Quantity:     i.quantity,
		Extras:       slices.Clone(i.extras),
		Instructions: i.instructions,
		Status:       i.status,
		Station:      i.station,
		PreparingAt:  cloneTime(i.preparingAt),
		ReadyAt:      cloneTime(i.readyAt),
	}
}

func (i *Item) clone() *Item {
	c := *i
	c.extras = slices.Clone(i.extras)
	c.preparingAt = cloneTime(i.preparingAt)
	c.readyAt = cloneTime(i.readyAt)
	return &c
}

// moveTo walks the item forward to target, stamping every timestamp it
// passes. It never moves backwards. station, when not empty, is recorded on
// the preparing step.
func (i *Item) moveTo(target ItemStatus, station string, now time.Time) {
	for i.status < target && i.status.CanTransitionTo(i.status+1) {
		i.status++
		switch i.status {
		case ItemPreparing:
			stampOnce(&i.preparingAt, now)
			if station != "" {
				i.station = station
			}
		case ItemReady:
			stampOnce(&i.readyAt, now)
		}
	}
}

func stampOnce(field **time.Time, now time.Time) {
	if *field == nil {
		t := now
		*field = &t
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
