package services

import (
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/order"
)

// Severity is the urgency colour of a timer on the display.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityCaution
	SeverityWarning
	SeverityCritical

	// SeverityResolved is used for ready entities whatever their age.
	SeverityResolved
)

const (
	CautionAfter  = 5 * time.Minute
	WarningAfter  = 10 * time.Minute
	CriticalAfter = 15 * time.Minute
)

var severityNames = [...]string{
	SeverityNormal:   "normal",
	SeverityCaution:  "caution",
	SeverityWarning:  "warning",
	SeverityCritical: "critical",
	SeverityResolved: "resolved",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText lets severities appear by name in JSON.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClassifyElapsed maps an elapsed duration to a severity. Every boundary is
// exclusive: exactly 5m is still normal.
func ClassifyElapsed(elapsed time.Duration) Severity {
	switch {
	case elapsed > CriticalAfter:
		return SeverityCritical
	case elapsed > WarningAfter:
		return SeverityWarning
	case elapsed > CautionAfter:
		return SeverityCaution
	default:
		return SeverityNormal
	}
}

// OrderReference returns the timestamp an order's timer counts from:
// submittedAt while queued, preparingAt while preparing or ready.
func OrderReference(o *order.Order) time.Time {
	if o.Status() != order.Confirmed {
		if at := o.PreparingAt(); at != nil {
			return *at
		}
	}
	return o.SubmittedAt()
}

// ItemReference returns the timestamp an item's timer counts from. Items that
// have not started count from their order's submission.
func ItemReference(o *order.Order, it *order.Item) time.Time {
	if it.Status() != order.ItemPending {
		if at := it.PreparingAt(); at != nil {
			return *at
		}
	}
	return o.SubmittedAt()
}

// Elapsed is now minus ref, clamped at zero for clocks that disagree.
func Elapsed(ref, now time.Time) time.Duration {
	if d := now.Sub(ref); d > 0 {
		return d
	}
	return 0
}

// OrderSeverity classifies an order at now.
func OrderSeverity(o *order.Order, now time.Time) Severity {
	if o.Status() == order.Ready {
		return SeverityResolved
	}
	return ClassifyElapsed(Elapsed(OrderReference(o), now))
}

// ItemSeverity classifies an item at now.
func ItemSeverity(o *order.Order, it *order.Item, now time.Time) Severity {
	if it.Status().IsDone() || o.Status() == order.Ready {
		return SeverityResolved
	}
	return ClassifyElapsed(Elapsed(ItemReference(o, it), now))
}

// FormatElapsed renders whole minutes as "7m" or "1h 5m".
func FormatElapsed(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatElapsedFine renders minutes and seconds as "7:04", used while the
// display ticks every second.
func FormatElapsedFine(d time.Duration) string {
	seconds := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
