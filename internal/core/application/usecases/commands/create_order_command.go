package commands

import (
	"errors"
	"fmt"
	"slices"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderCodeIsRequired = errors.New("order code is required")
	ErrOrderHasNoItems     = errors.New("order must have at least one item")
)

// OrderLine is one requested item.
type OrderLine struct {
	Name         string
	Quantity     int
	Extras       []string
	Instructions string
}

// OrderDetails carries the optional parts of a new order.
type OrderDetails struct {
	CustomerName string
	Table        string
	SessionID    string
	Notes        string
}

// CreateOrderCommand puts a confirmed order on the kitchen queue. It is the
// intake path for point of sale integrations and for seeding a terminal.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "A-17", order.Takeaway,
//	    []OrderLine{{Name: "Burger", Quantity: 2}},
//	    OrderDetails{SessionID: "c0ffee"},
//	)
//	if err != nil {
//	    return err
//	}
//	return handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string
	mode    order.ConsumptionMode
	lines   []OrderLine
	details OrderDetails

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	code string,
	mode order.ConsumptionMode,
	lines []OrderLine,
	details OrderDetails,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setMode(mode),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateOrderCommand) Code() string                { return c.code }
func (c CreateOrderCommand) Mode() order.ConsumptionMode { return c.mode }
func (c CreateOrderCommand) Lines() []OrderLine          { return slices.Clone(c.lines) }
func (c CreateOrderCommand) Details() OrderDetails       { return c.details }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCode(code string) error {
	if code == "" {
		return ErrOrderCodeIsRequired
	}

	c.code = code
	return nil
}

func (c *CreateOrderCommand) setMode(mode order.ConsumptionMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	c.mode = mode
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrOrderHasNoItems
	}
	for i, l := range lines {
		if l.Name == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("item %d name", i+1))
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("item %d quantity", i+1), l.Quantity, 1, "unbounded")
		}
	}

	c.lines = slices.Clone(lines)
	return nil
}
