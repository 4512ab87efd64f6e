package order

import (
	"errors"
	"slices"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// OrderState is the full, exported representation of an order and its items.
// Repositories build it from rows and hand it to RestoreOrder; read models get it
// from State.
type OrderState struct {
	ID           kernel.UUID
	Code         string
	CustomerName string
	Table        string
	Mode         ConsumptionMode
	Status       Status
	SessionID    string
	SubmittedAt  time.Time
	ConfirmedAt  *time.Time
	PreparingAt  *time.Time
	Notes        string
	Items        []ItemState
}

// Order is the aggregate root of the kitchen. It owns its items and is the
// only place where order and item statuses change.
//
// Order follows these invariants:
//   - Item statuses only move forward
//   - A Ready order only holds Ready or Served items
//   - preparingAt and the item timestamps are stamped once and never moved
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	code         string
	customerName string
	table        string
	mode         ConsumptionMode
	status       Status
	sessionID    string
	submittedAt  time.Time
	confirmedAt  *time.Time
	preparingAt  *time.Time
	notes        string
	items        []*Item

	isConstructed bool
}

// NewOrder creates a Confirmed order without items. Orders reach the kitchen
// already confirmed, so this is mostly used by tests and seeding.
func NewOrder(id kernel.UUID, code string, mode ConsumptionMode, submittedAt time.Time) (*Order, error) {
	confirmedAt := submittedAt
	return RestoreOrder(OrderState{
		ID:          id,
		Code:        code,
		Mode:        mode,
		Status:      Confirmed,
		SubmittedAt: submittedAt,
		ConfirmedAt: &confirmedAt,
	})
}

// RestoreOrder rebuilds an order from persisted state. All fields and items are
// validated and every problem is reported at once.
func RestoreOrder(state OrderState) (*Order, error) {
	var codeErr error
	if state.Code == "" {
		codeErr = errs.NewValueIsRequiredError("order code")
	}
	var submittedErr error
	if state.SubmittedAt.IsZero() {
		submittedErr = errs.NewValueIsRequiredError("submitted at")
	}

	if err := errors.Join(
		state.ID.Validate(),
		codeErr,
		state.Mode.Validate(),
		state.Status.Validate(),
		submittedErr,
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:            state.ID,
		code:          state.Code,
		customerName:  state.CustomerName,
		table:         state.Table,
		mode:          state.Mode,
		status:        state.Status,
		sessionID:     state.SessionID,
		submittedAt:   state.SubmittedAt,
		confirmedAt:   cloneTime(state.ConfirmedAt),
		preparingAt:   cloneTime(state.PreparingAt),
		notes:         state.Notes,
		items:         make([]*Item, 0, len(state.Items)),
		isConstructed: true,
	}

	for _, is := range state.Items {
		if err := o.AddItem(is); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// AddItem attaches an item to the order. The item's OrderID is forced to the
// order's id when left empty.
func (o *Order) AddItem(state ItemState) error {
	if state.OrderID.IsZero() {
		state.OrderID = o.id
	}
	if !state.OrderID.IsEqual(o.id) {
		return errs.NewValueIsInvalidError("item order id")
	}
	for _, it := range o.items {
		if it.id.IsEqual(state.ID) {
			return errs.NewValueIsInvalidError("duplicate item id")
		}
	}

	item, err := RestoreItem(state)
	if err != nil {
		return err
	}
	o.items = append(o.items, item)
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) Code() string            { return o.code }
func (o *Order) CustomerName() string    { return o.customerName }
func (o *Order) Table() string           { return o.table }
func (o *Order) Mode() ConsumptionMode   { return o.mode }
func (o *Order) Status() Status          { return o.status }
func (o *Order) SessionID() string       { return o.sessionID }
func (o *Order) SubmittedAt() time.Time  { return o.submittedAt }
func (o *Order) ConfirmedAt() *time.Time { return cloneTime(o.confirmedAt) }
func (o *Order) PreparingAt() *time.Time { return cloneTime(o.preparingAt) }
func (o *Order) Notes() string           { return o.notes }
func (o *Order) ItemCount() int          { return len(o.items) }

// Items returns copies of the order's items in their original order.
func (o *Order) Items() []*Item {
	items := make([]*Item, 0, len(o.items))
	for _, it := range o.items {
		items = append(items, it.clone())
	}
	return items
}

// Item returns a copy of the item with the given id.
func (o *Order) Item(id kernel.UUID) (*Item, bool) {
	if it := o.item(id); it != nil {
		return it.clone(), true
	}
	return nil, false
}

// AllItemsDone reports whether every item is Ready or Served. An order
// without items is never done by this rule.
func (o *Order) AllItemsDone() bool {
	if len(o.items) == 0 {
		return false
	}
	for _, it := range o.items {
		if !it.status.IsDone() {
			return false
		}
	}
	return true
}

// State returns a deep copy of the order and its items.
func (o *Order) State() OrderState {
	items := make([]ItemState, 0, len(o.items))
	for _, it := range o.items {
		items = append(items, it.State())
	}
	return OrderState{
		ID:           o.id,
		Code:         o.code,
		CustomerName: o.customerName,
		Table:        o.table,
		Mode:         o.mode,
		Status:       o.status,
		SessionID:    o.sessionID,
		SubmittedAt:  o.submittedAt,
		ConfirmedAt:  cloneTime(o.confirmedAt),
		PreparingAt:  cloneTime(o.preparingAt),
		Notes:        o.notes,
		Items:        items,
	}
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	c := *o
	c.confirmedAt = cloneTime(o.confirmedAt)
	c.preparingAt = cloneTime(o.preparingAt)
	c.items = make([]*Item, 0, len(o.items))
	for _, it := range o.items {
		c.items = append(c.items, it.clone())
	}
	return &c
}

// CheckInvariants returns an error if a Ready order holds an unfinished item.
func (o *Order) CheckInvariants() error {
	if o.status == Ready {
		for _, it := range o.items {
			if !it.status.IsDone() {
				return errs.NewValueIsInvalidError("ready order " + o.code + " has unfinished item " + it.id.String())
			}
		}
	}
	return nil
}

// Advance moves the order to target.
//
// Requesting the current status is a no-op and returns a Transition for which
// IsNoOp is true. Any target not reachable in one step is rejected with an
// IllegalTransitionError and leaves the order untouched.
//
// Entering Preparing moves every Pending item to Preparing. Entering Ready
// finishes every item that is not done yet, so a Ready order never holds
// unfinished items.
func (o *Order) Advance(target Status, now time.Time) (Transition, error) {
	tr := Transition{OrderID: o.id, From: o.status, To: o.status}
	if target == o.status {
		return tr, nil
	}
	if !o.status.CanTransitionTo(target) {
		return tr, errs.NewIllegalTransitionError("order", o.code, o.status, target)
	}

	switch target {
	case Preparing:
		stampOnce(&o.preparingAt, now)
		tr.Items = o.cascade(ItemPending, ItemPreparing, now)
	case Ready:
		stampOnce(&o.preparingAt, now)
		tr.Items = o.cascade(ItemPending, ItemReady, now)
		tr.Items = append(tr.Items, o.cascade(ItemPreparing, ItemReady, now)...)
		slices.SortStableFunc(tr.Items, o.byItemPosition)
	}

	o.status = target
	tr.To = target
	return tr, nil
}

// AdvanceItem moves a single item to target and records station when the item
// starts preparing. When this finishes the last unfinished item of an order
// that is Confirmed or Preparing, the order moves to Ready as well and the
// returned Transition is marked Implicit.
func (o *Order) AdvanceItem(itemID kernel.UUID, target ItemStatus, station string, now time.Time) (Transition, error) {
	tr := Transition{OrderID: o.id, From: o.status, To: o.status}

	it := o.item(itemID)
	if it == nil {
		return tr, errs.NewObjectNotFoundError("item", itemID)
	}
	if target == it.status {
		return tr, nil
	}
	if !it.status.CanTransitionTo(target) {
		return tr, errs.NewIllegalTransitionError("item", itemID, it.status, target)
	}

	from := it.status
	it.moveTo(target, station, now)
	tr.Items = []ItemChange{{ItemID: it.id, From: from, To: it.status}}

	if o.AllItemsDone() && (o.status == Confirmed || o.status == Preparing) {
		stampOnce(&o.preparingAt, now)
		o.status = Ready
		tr.To = Ready
		tr.Implicit = true
	}

	return tr, nil
}

func (o *Order) item(id kernel.UUID) *Item {
	for _, it := range o.items {
		if it.id.IsEqual(id) {
			return it
		}
	}
	return nil
}

func (o *Order) cascade(from, to ItemStatus, now time.Time) []ItemChange {
	var changes []ItemChange
	for _, it := range o.items {
		if it.status != from {
			continue
		}
		it.moveTo(to, "", now)
		changes = append(changes, ItemChange{ItemID: it.id, From: from, To: it.status})
	}
	return changes
}

func (o *Order) byItemPosition(a, b ItemChange) int {
	pos := func(id kernel.UUID) int {
		return slices.IndexFunc(o.items, func(it *Item) bool { return it.id.IsEqual(id) })
	}
	return pos(a.ItemID) - pos(b.ItemID)
}
