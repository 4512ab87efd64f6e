package order

import "kitchen/internal/core/domain/model/kernel"

// ItemChange records one item moving from one status to another.
type ItemChange struct {
	ItemID kernel.UUID
	From   ItemStatus
	To     ItemStatus
}

// Transition describes everything an Advance or AdvanceItem call changed.
// A zero Transition (see IsNoOp) means the requested status was already in
// place and nothing was touched.
type Transition struct {
	OrderID kernel.UUID

	// From and To are equal when the order status did not change.
	From Status
	To   Status

	// Implicit is set when the order status changed because its last
	// unfinished item was finished.
	Implicit bool

	// Items lists direct and cascaded item changes in item order.
	Items []ItemChange
}

// OrderChanged reports whether the order status moved.
func (t Transition) OrderChanged() bool {
	return t.From != t.To
}

// IsNoOp reports whether nothing changed.
func (t Transition) IsNoOp() bool {
	return !t.OrderChanged() && len(t.Items) == 0
}

// ItemIDs returns the ids of all changed items.
func (t Transition) ItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(t.Items))
	for _, c := range t.Items {
		ids = append(ids, c.ItemID)
	}
	return ids
}
