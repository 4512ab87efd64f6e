package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
)

// ReadyNotification is sent once an order reaches Ready.
type ReadyNotification struct {
	OrderID   kernel.UUID `json:"orderId"`
	SessionID string      `json:"sessionId"`
	OrderCode string      `json:"orderCode"`
}

// ReadyNotifier tells the customer side that an order can be picked up.
// Delivery is best effort.
type ReadyNotifier interface {
	NotifyReady(ctx context.Context, n ReadyNotification) error
}

// Alerter plays the new order alert on the terminal.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Change feed channels.
const (
	ChannelOrders = "kitchen_orders"
	ChannelItems  = "kitchen_items"
)

// ChangeFeed delivers content-free change signals. Run blocks until ctx is
// done and calls onChange with the channel name for every signal received.
type ChangeFeed interface {
	Run(ctx context.Context, onChange func(channel string)) error
}
