package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// ItemStatus is the preparation state of a single item. Values are ordered:
// a larger value is further along and statuses never move backwards.
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemPending
	ItemPreparing
	ItemReady
	ItemServed

	itemStatusCount
)

var itemStatusNames = [itemStatusCount]string{
	ItemUnknown:   "unknown",
	ItemPending:   "pending",
	ItemPreparing: "preparing",
	ItemReady:     "ready",
	ItemServed:    "served",
}

var itemTransitions = [itemStatusCount][itemStatusCount]bool{
	ItemPending:   {ItemPreparing: true},
	ItemPreparing: {ItemReady: true},
}

// ParseItemStatus converts the persisted name of an item status.
func ParseItemStatus(s string) (ItemStatus, error) {
	for st := ItemPending; st < itemStatusCount; st++ {
		if itemStatusNames[st] == s {
			return st, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%q is not a valid item status", s))
}

func (s ItemStatus) Validate() error {
	if s <= ItemUnknown || s >= itemStatusCount {
		return errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

func (s ItemStatus) String() string {
	if s < ItemUnknown || s >= itemStatusCount {
		return itemStatusNames[ItemUnknown]
	}
	return itemStatusNames[s]
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return itemTransitions[s][target]
}

// Predecessors returns s and every status before it. Item statuses are
// ordered, so a write of s is only valid over one of them.
func (s ItemStatus) Predecessors() []ItemStatus {
	if s.Validate() != nil {
		return nil
	}
	var out []ItemStatus
	for st := ItemPending; st <= s; st++ {
		out = append(out, st)
	}
	return out
}

// IsDone reports whether the item no longer needs kitchen work.
func (s ItemStatus) IsDone() bool {
	return s == ItemReady || s == ItemServed
}
