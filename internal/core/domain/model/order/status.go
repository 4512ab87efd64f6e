package order

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions handled by the kitchen:
//
//	Confirmed ──> Preparing ──> Ready ──> Delivered
//
// Pending is owned by upstream ordering and Cancelled by the out-of-band
// cancellation path; neither is reachable through Advance.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending orders have been submitted but not accepted yet.
	Pending

	// Confirmed orders are queued for the kitchen.
	Confirmed

	// Preparing orders are being cooked.
	Preparing

	// Ready orders wait for pickup or service.
	Ready

	// Delivered is final; the order leaves the kitchen view.
	Delivered

	// Cancelled is final; the order leaves the kitchen view.
	Cancelled

	statusCount
)

var statusNames = [statusCount]string{
	Unknown:   "unknown",
	Pending:   "pending",
	Confirmed: "confirmed",
	Preparing: "preparing",
	Ready:     "ready",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// orderTransitions is the from x target table. Every pair not set here is
// illegal.
var orderTransitions = [statusCount][statusCount]bool{
	Confirmed: {Preparing: true},
	Preparing: {Ready: true},
	Ready:     {Delivered: true},
}

// ActiveStatuses are the statuses shown on the kitchen display, in display order.
func ActiveStatuses() []Status {
	return []Status{Confirmed, Preparing, Ready}
}

// ParseStatus converts the persisted name of a status back into a Status.
func ParseStatus(s string) (Status, error) {
	for st := Pending; st < statusCount; st++ {
		if statusNames[st] == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s >= statusCount {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if s < Unknown || s >= statusCount {
		return statusNames[Unknown]
	}
	return statusNames[s]
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return orderTransitions[s][target]
}

// Next returns the single status reachable from s, if any.
func (s Status) Next() (Status, bool) {
	for target := Pending; target < statusCount; target++ {
		if s.CanTransitionTo(target) {
			return target, true
		}
	}
	return Unknown, false
}

// Predecessors returns s and every status that reaches s by advancing, in
// chain order. A write of s is only valid over one of them.
func (s Status) Predecessors() []Status {
	chain := []Status{s}
	for cur := s; ; {
		prev, ok := cur.previous()
		if !ok {
			break
		}
		chain = append([]Status{prev}, chain...)
		cur = prev
	}
	return chain
}

func (s Status) previous() (Status, bool) {
	for from := Pending; from < statusCount; from++ {
		if from.CanTransitionTo(s) {
			return from, true
		}
	}
	return Unknown, false
}

// IsActive reports whether orders in this status belong on the kitchen display.
func (s Status) IsActive() bool {
	return s == Confirmed || s == Preparing || s == Ready
}
