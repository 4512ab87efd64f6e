package push

import (
	"context"
	"encoding/json"
	"fmt"

	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReadyRoutingKey is the routing key of every ready notification.
const ReadyRoutingKey = "order.ready"

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes ready notifications to a topic exchange. A channel is
// opened per message; notifications are rare.
type AMQPNotifier struct {
	exchange string
	open     func() (channel, error)
}

// NewAMQPNotifier publishes on conn to exchange, declaring it on first use.
func NewAMQPNotifier(conn *amqp.Connection, exchange string) (*AMQPNotifier, error) {
	if conn == nil {
		return nil, errs.NewValueIsRequiredError("amqp connection")
	}
	return newAMQPNotifier(exchange, func() (channel, error) {
		return conn.Channel()
	})
}

func newAMQPNotifier(exchange string, open func() (channel, error)) (*AMQPNotifier, error) {
	if exchange == "" {
		return nil, errs.NewValueIsRequiredError("exchange")
	}
	return &AMQPNotifier{exchange: exchange, open: open}, nil
}

func (n *AMQPNotifier) NotifyReady(ctx context.Context, msg ports.ReadyNotification) error {
	ch, err := n.open()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(n.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, n.exchange, ReadyRoutingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    msg.OrderID.String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}
