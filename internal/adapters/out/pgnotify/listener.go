// Package pgnotify turns PostgreSQL LISTEN/NOTIFY signals into change
// callbacks. Payloads are ignored; a signal only means "something changed,
// reload".
package pgnotify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/lib/pq"
)

const (
	minReconnect = 2 * time.Second
	maxReconnect = time.Minute
	pingInterval = 90 * time.Second
)

type subscription interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Listener implements ports.ChangeFeed on top of pq.Listener.
type Listener struct {
	channels []string
	logger   *slog.Logger
	connect  func(onEvent pq.EventCallbackType) subscription
	ping     time.Duration
}

// NewListener listens on the order and item channels using dsn.
func NewListener(dsn string, logger *slog.Logger) (*Listener, error) {
	if dsn == "" {
		return nil, errs.NewValueIsRequiredError("dsn")
	}
	return newListener(logger, func(onEvent pq.EventCallbackType) subscription {
		return pq.NewListener(dsn, minReconnect, maxReconnect, onEvent)
	}), nil
}

func newListener(logger *slog.Logger, connect func(pq.EventCallbackType) subscription) *Listener {
	return &Listener{
		channels: []string{ports.ChannelOrders, ports.ChannelItems},
		logger:   logger.With("component", "pgnotify"),
		connect:  connect,
		ping:     pingInterval,
	}
}

// Run subscribes and blocks until ctx is done. onChange is called from the
// Run goroutine with the channel name. After a reconnect it is called once
// with ChannelOrders since signals may have been lost in between.
func (l *Listener) Run(ctx context.Context, onChange func(channel string)) error {
	sub := l.connect(func(event pq.ListenerEventType, err error) {
		switch event {
		case pq.ListenerEventDisconnected:
			l.logger.WarnContext(ctx, "change feed disconnected", "error", err)
		case pq.ListenerEventConnectionAttemptFailed:
			l.logger.WarnContext(ctx, "change feed reconnect failed", "error", err)
		case pq.ListenerEventReconnected:
			l.logger.InfoContext(ctx, "change feed reconnected")
		}
	})
	defer func() {
		if err := sub.Close(); err != nil && !errors.Is(err, pq.ErrListenerClosed) {
			l.logger.WarnContext(ctx, "close change feed", "error", err)
		}
	}()

	for _, ch := range l.channels {
		if err := sub.Listen(ch); err != nil {
			return err
		}
	}
	l.logger.InfoContext(ctx, "change feed listening", "channels", l.channels)

	ticker := time.NewTicker(l.ping)
	defer ticker.Stop()

	notifications := sub.NotificationChannel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-notifications:
			if !ok {
				return pq.ErrListenerClosed
			}
			if n == nil {
				onChange(ports.ChannelOrders)
				continue
			}
			onChange(n.Channel)
		case <-ticker.C:
			go func() {
				if err := sub.Ping(); err != nil {
					l.logger.DebugContext(ctx, "change feed ping failed", "error", err)
				}
			}()
		}
	}
}
