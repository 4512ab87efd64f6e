package commands

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"k8s.io/utils/clock"
)

// CreateOrderCommandHandler stores new confirmed orders. Terminals pick them
// up through the change feed, not through this handler.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.PassiveClock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.PassiveClock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle builds the order with all items pending and persists it in one
// transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	details := cmd.Details()
	items := make([]order.ItemState, 0, len(cmd.Lines()))
	for _, l := range cmd.Lines() {
		items = append(items, order.ItemState{
			ID:           kernel.NewUUID(),
			OrderID:      cmd.OrderID(),
			Name:         l.Name,
			Quantity:     l.Quantity,
			Extras:       l.Extras,
			Instructions: l.Instructions,
			Status:       order.ItemPending,
		})
	}

	o, err := order.RestoreOrder(order.OrderState{
		ID:           cmd.OrderID(),
		Code:         cmd.Code(),
		CustomerName: details.CustomerName,
		Table:        details.Table,
		Mode:         cmd.Mode(),
		Status:       order.Confirmed,
		SessionID:    details.SessionID,
		SubmittedAt:  now,
		ConfirmedAt:  &now,
		Notes:        details.Notes,
		Items:        items,
	})
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
