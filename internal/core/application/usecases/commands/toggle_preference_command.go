package commands

import (
	"context"
	"errors"

	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/pkg/guard"
)

var ErrTogglePreferenceCommandIsNotConstructed = errors.New(
	"TogglePreferenceCommand must be created via NewTogglePreferenceCommand constructor",
)

// TogglePreferenceCommand flips one display preference by name.
type TogglePreferenceCommand struct { //nolint:recvcheck //using for validation
	toggle kitchen.Toggle

	guard guard.ConstructorGuard
}

func NewTogglePreferenceCommand(name string) (TogglePreferenceCommand, error) {
	t, err := kitchen.ParseToggle(name)
	if err != nil {
		return TogglePreferenceCommand{}, err
	}
	return TogglePreferenceCommand{toggle: t, guard: guard.NewConstructorGuard()}, nil
}

func (c TogglePreferenceCommand) Validate() error {
	return c.guard.Validate(ErrTogglePreferenceCommandIsNotConstructed)
}

func (c TogglePreferenceCommand) Toggle() kitchen.Toggle { return c.toggle }

// TogglePreferenceCommandHandler applies preference toggles.
type TogglePreferenceCommandHandler struct {
	terminal Terminal
}

func NewTogglePreferenceCommandHandler(terminal Terminal) TogglePreferenceCommandHandler {
	return TogglePreferenceCommandHandler{terminal: terminal}
}

func (h TogglePreferenceCommandHandler) Handle(_ context.Context, cmd TogglePreferenceCommand) (kitchen.Preferences, error) {
	if err := cmd.Validate(); err != nil {
		return kitchen.Preferences{}, err
	}
	return h.terminal.Toggle(cmd.Toggle())
}
