package kitchen

import (
	"fmt"
	"time"

	"kitchen/internal/pkg/errs"
)

// Preferences are per-terminal display toggles. They never affect order
// state.
type Preferences struct {
	Muted      bool `json:"muted"`
	Compact    bool `json:"compact"`
	FineTimer  bool `json:"fineTimer"`
	Fullscreen bool `json:"fullscreen"`
}

// Toggle names a single preference.
type Toggle string

const (
	ToggleMute       Toggle = "mute"
	ToggleDensity    Toggle = "density"
	ToggleFineTimer  Toggle = "fine-timer"
	ToggleFullscreen Toggle = "fullscreen"
)

func ParseToggle(s string) (Toggle, error) {
	switch t := Toggle(s); t {
	case ToggleMute, ToggleDensity, ToggleFineTimer, ToggleFullscreen:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("toggle", fmt.Errorf("%q is not a known toggle", s))
}

func (p Preferences) tickInterval() time.Duration {
	if p.FineTimer {
		return FineTickInterval
	}
	return CoarseTickInterval
}

// Preferences returns the current display preferences.
func (c *Coordinator) Preferences() Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.prefs
}

// Toggle flips one preference and returns the result. Switching the fine
// timer notifies the cadence listener with the new tick interval.
func (c *Coordinator) Toggle(t Toggle) (Preferences, error) {
	c.mu.Lock()
	switch t {
	case ToggleMute:
		c.prefs.Muted = !c.prefs.Muted
	case ToggleDensity:
		c.prefs.Compact = !c.prefs.Compact
	case ToggleFineTimer:
		c.prefs.FineTimer = !c.prefs.FineTimer
	case ToggleFullscreen:
		c.prefs.Fullscreen = !c.prefs.Fullscreen
	default:
		c.mu.Unlock()
		return Preferences{}, errs.NewValueIsInvalidError("toggle " + string(t))
	}
	prefs := c.prefs
	c.mu.Unlock()

	if t == ToggleFineTimer {
		c.onCadence(prefs.tickInterval())
	}
	return prefs, nil
}
