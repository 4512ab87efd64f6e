package commands

import "context"

// TransitionItemCommandHandler forwards item transitions to the terminal.
type TransitionItemCommandHandler struct {
	terminal Terminal
}

func NewTransitionItemCommandHandler(terminal Terminal) TransitionItemCommandHandler {
	return TransitionItemCommandHandler{terminal: terminal}
}

func (h TransitionItemCommandHandler) Handle(_ context.Context, cmd TransitionItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.terminal.TransitionItem(cmd.OrderID(), cmd.ItemID(), cmd.Target(), cmd.Station())
}
