package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// ConsumptionMode tells the kitchen how the order leaves the pass.
type ConsumptionMode int

const (
	DineIn ConsumptionMode = iota + 1
	Takeaway
)

// ParseConsumptionMode accepts the persisted names "dine-in" and "takeaway".
func ParseConsumptionMode(s string) (ConsumptionMode, error) {
	switch s {
	case "dine-in":
		return DineIn, nil
	case "takeaway":
		return Takeaway, nil
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("consumption mode", fmt.Errorf("%q is not a valid consumption mode", s))
}

func (m ConsumptionMode) String() string {
	switch m {
	case DineIn:
		return "dine-in"
	case Takeaway:
		return "takeaway"
	}
	return "unknown"
}

func (m ConsumptionMode) Validate() error {
	if m != DineIn && m != Takeaway {
		return errs.NewValueIsInvalidErrorWithCause("consumption mode", fmt.Errorf("%d is not a valid consumption mode", m))
	}
	return nil
}
