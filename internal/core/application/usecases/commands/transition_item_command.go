package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/guard"
)

var ErrTransitionItemCommandIsNotConstructed = errors.New(
	"TransitionItemCommand must be created via NewTransitionItemCommand constructor",
)

// TransitionItemCommand moves one item to a target status. Station is
// optional and defaults to the terminal's own station.
type TransitionItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	target  order.ItemStatus
	station string

	guard guard.ConstructorGuard
}

func NewTransitionItemCommand(
	orderID, itemID kernel.UUID,
	target order.ItemStatus,
	station string,
) (TransitionItemCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate(), target.Validate()); err != nil {
		return TransitionItemCommand{}, err
	}

	return TransitionItemCommand{
		orderID: orderID,
		itemID:  itemID,
		target:  target,
		station: station,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionItemCommand) Validate() error {
	return c.guard.Validate(ErrTransitionItemCommandIsNotConstructed)
}

func (c TransitionItemCommand) OrderID() kernel.UUID     { return c.orderID }
func (c TransitionItemCommand) ItemID() kernel.UUID      { return c.itemID }
func (c TransitionItemCommand) Target() order.ItemStatus { return c.target }
func (c TransitionItemCommand) Station() string          { return c.station }
