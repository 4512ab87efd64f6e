package push

import (
	"context"
	"log/slog"

	"kitchen/internal/core/ports"
)

// NopNotifier logs the notification and drops it.
type NopNotifier struct {
	logger *slog.Logger
}

func NewNopNotifier(logger *slog.Logger) *NopNotifier {
	return &NopNotifier{logger: logger}
}

func (n *NopNotifier) NotifyReady(ctx context.Context, msg ports.ReadyNotification) error {
	n.logger.DebugContext(ctx, "ready notification dropped, no push target configured",
		"order_id", msg.OrderID.String(), "order_code", msg.OrderCode)
	return nil
}
