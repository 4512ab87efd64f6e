package commands

import (
	"errors"
	"strings"

	"kitchen/internal/pkg/guard"
)

var (
	ErrPressKeyCommandIsNotConstructed = errors.New(
		"PressKeyCommand must be created via NewPressKeyCommand constructor",
	)
	ErrKeyIsRequired = errors.New("key is required")
)

// PressKeyCommand is a key press on the terminal keyboard or a physical
// button wired to it.
type PressKeyCommand struct { //nolint:recvcheck //using for validation
	symbol string

	guard guard.ConstructorGuard
}

func NewPressKeyCommand(symbol string) (PressKeyCommand, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return PressKeyCommand{}, ErrKeyIsRequired
	}

	return PressKeyCommand{symbol: symbol, guard: guard.NewConstructorGuard()}, nil
}

func (c PressKeyCommand) Validate() error {
	return c.guard.Validate(ErrPressKeyCommandIsNotConstructed)
}

func (c PressKeyCommand) Symbol() string { return c.symbol }
