package commands

import (
	"context"

	"kitchen/internal/core/application/kitchen"
)

// PressKeyCommandHandler resolves a key press against the terminal's key map.
type PressKeyCommandHandler struct {
	terminal Terminal
}

func NewPressKeyCommandHandler(terminal Terminal) PressKeyCommandHandler {
	return PressKeyCommandHandler{terminal: terminal}
}

// Handle returns what the key did: either the transition it started or the
// preferences after a toggle.
func (h PressKeyCommandHandler) Handle(_ context.Context, cmd PressKeyCommand) (kitchen.Action, error) {
	if err := cmd.Validate(); err != nil {
		return kitchen.Action{}, err
	}
	return h.terminal.Dispatch(cmd.Symbol())
}
