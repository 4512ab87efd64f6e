package kitchen

import (
	"fmt"
	"strings"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
)

// KeyMap assigns one symbol to every positional slot of the three buckets
// and to each toggle.
type KeyMap struct {
	Confirmed []string          `yaml:"confirmed" json:"confirmed"`
	Preparing []string          `yaml:"preparing" json:"preparing"`
	Ready     []string          `yaml:"ready" json:"ready"`
	Toggles   map[Toggle]string `yaml:"toggles" json:"toggles"`
}

// DefaultKeyMap is the layout of a standard keyboard: the digit row for
// queued orders, the row below for orders in preparation and the home row
// for ready orders.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirmed: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Preparing: []string{"q", "w", "e", "r", "t"},
		Ready:     []string{"a", "s", "d", "f", "g"},
		Toggles: map[Toggle]string{
			ToggleMute:       "m",
			ToggleDensity:    "c",
			ToggleFineTimer:  "p",
			ToggleFullscreen: "z",
		},
	}
}

// Validate rejects empty and duplicated symbols. Symbols are compared the
// way Dispatch matches them, so "A" and "a" collide.
func (km KeyMap) Validate() error {
	seen := make(map[string]string)
	check := func(where, symbol string) error {
		symbol = normalizeSymbol(symbol)
		if symbol == "" {
			return errs.NewValueIsRequiredError("key for " + where)
		}
		if other, ok := seen[symbol]; ok {
			return errs.NewValueIsInvalidErrorWithCause("key map",
				fmt.Errorf("%q is bound to both %s and %s", symbol, other, where))
		}
		seen[symbol] = where
		return nil
	}

	for status, symbols := range km.buckets() {
		for i, s := range symbols {
			if err := check(fmt.Sprintf("%s slot %d", status, i+1), s); err != nil {
				return err
			}
		}
	}
	for t, s := range km.Toggles {
		if _, err := ParseToggle(string(t)); err != nil {
			return err
		}
		if err := check(string(t), s); err != nil {
			return err
		}
	}
	return nil
}

func (km KeyMap) buckets() map[order.Status][]string {
	return map[order.Status][]string{
		order.Confirmed: km.Confirmed,
		order.Preparing: km.Preparing,
		order.Ready:     km.Ready,
	}
}

// slotKey returns the symbol for position pos (0 based) in a bucket, empty if
// the position has no key.
func (km KeyMap) slotKey(status order.Status, pos int) string {
	symbols := km.buckets()[status]
	if pos < len(symbols) {
		return symbols[pos]
	}
	return ""
}

// ActionKind tells what a key press did.
type ActionKind string

const (
	ActionTransition ActionKind = "transition"
	ActionToggle     ActionKind = "toggle"
)

// Action is the outcome of Dispatch.
type Action struct {
	Kind        ActionKind   `json:"kind"`
	OrderID     *kernel.UUID `json:"orderId,omitempty"`
	Target      string       `json:"target,omitempty"`
	Toggle      Toggle       `json:"toggle,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Dispatch handles a key press. Slot keys advance the order currently shown
// at that position by one step; toggle keys flip a preference. Symbols are
// matched case-insensitively.
func (c *Coordinator) Dispatch(symbol string) (Action, error) {
	symbol = normalizeSymbol(symbol)

	for t, s := range c.keys.Toggles {
		if normalizeSymbol(s) == symbol {
			prefs, err := c.Toggle(t)
			if err != nil {
				return Action{}, err
			}
			return Action{Kind: ActionToggle, Toggle: t, Preferences: &prefs}, nil
		}
	}

	status, pos, ok := c.lookupSlot(symbol)
	if !ok {
		return Action{}, errs.NewObjectNotFoundError("key", symbol)
	}

	id, ok := c.orderAt(status, pos)
	if !ok {
		return Action{}, errs.NewObjectNotFoundError(status.String()+" slot", fmt.Sprint(pos+1))
	}

	target, _ := status.Next()
	if err := c.TransitionOrder(id, target); err != nil {
		return Action{}, err
	}
	return Action{Kind: ActionTransition, OrderID: &id, Target: target.String()}, nil
}

func normalizeSymbol(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (c *Coordinator) lookupSlot(symbol string) (order.Status, int, bool) {
	for status, symbols := range c.keys.buckets() {
		for i, s := range symbols {
			if normalizeSymbol(s) == symbol {
				return status, i, true
			}
		}
	}
	return order.Unknown, 0, false
}

// orderAt returns the id of the order at position pos among orders with the
// given status, in display order.
func (c *Coordinator) orderAt(status order.Status, pos int) (kernel.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if e.order.Status() != status {
			continue
		}
		if n == pos {
			return e.order.ID(), true
		}
		n++
	}
	return kernel.UUID{}, false
}
