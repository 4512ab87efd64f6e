package commands

import "context"

// TransitionOrderCommandHandler forwards order transitions to the terminal.
// The terminal applies them locally before the write is durable; a write
// failure surfaces later through the terminal's notice, not here.
type TransitionOrderCommandHandler struct {
	terminal Terminal
}

func NewTransitionOrderCommandHandler(terminal Terminal) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{terminal: terminal}
}

func (h TransitionOrderCommandHandler) Handle(_ context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.terminal.TransitionOrder(cmd.OrderID(), cmd.Target())
}
