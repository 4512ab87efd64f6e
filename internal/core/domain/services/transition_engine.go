package services

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"k8s.io/utils/clock"
)

// Outcome is the result of a successful transition. Order is a new value; the
// order passed to the engine is never modified.
type Outcome struct {
	Order      *order.Order
	Transition order.Transition
}

// ReachedReady reports whether this transition moved the order into Ready,
// either explicitly or because its last item was finished.
func (o Outcome) ReachedReady() bool {
	return o.Transition.OrderChanged() && o.Transition.To == order.Ready
}

// TransitionEngine is the single entry point for status changes. It stamps
// timestamps from its clock so tests can drive time.
//
// Example usage:
//
//	engine := services.NewTransitionEngine(clock.RealClock{})
//	out, err := engine.TransitionOrder(o, order.Preparing)
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // nothing was changed
//	}
type TransitionEngine struct {
	clock clock.PassiveClock
}

func NewTransitionEngine(c clock.PassiveClock) TransitionEngine {
	if c == nil {
		c = clock.RealClock{}
	}
	return TransitionEngine{clock: c}
}

// TransitionOrder moves o to target. Legal steps are confirmed to preparing,
// preparing to ready and ready to delivered; the item cascades are described
// on order.Order.Advance. Requesting the current status yields an Outcome
// whose Transition is a no-op.
func (e TransitionEngine) TransitionOrder(o *order.Order, target order.Status) (Outcome, error) {
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}

	next := o.Clone()
	tr, err := next.Advance(target, e.now())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: next, Transition: tr}, nil
}

// TransitionItem moves one item of o to target, recording station when the
// item starts preparing. If that finishes the order, the order becomes Ready
// in the same Outcome.
func (e TransitionEngine) TransitionItem(o *order.Order, itemID kernel.UUID, target order.ItemStatus, station string) (Outcome, error) {
	if err := o.Validate(); err != nil {
		return Outcome{}, err
	}

	next := o.Clone()
	tr, err := next.AdvanceItem(itemID, target, station, e.now())
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: next, Transition: tr}, nil
}

func (e TransitionEngine) now() time.Time {
	return e.clock.Now()
}
