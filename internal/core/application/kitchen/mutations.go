package kitchen

import (
	"context"
	"errors"
	"sort"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/optimistic"
)

// errNoChange makes Apply drop a command that would not change anything.
var errNoChange = errors.New("no change")

// Notice is the soft, non-blocking error shown after a rollback.
type Notice struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// TransitionOrder moves an order one step and persists it in the background.
//
// The local view changes before TransitionOrder returns. Illegal targets and
// unknown orders are rejected without touching the view. Delivering an order
// removes it from the view; if the write then fails, it is put back in
// submission order.
func (c *Coordinator) TransitionOrder(id kernel.UUID, target order.Status) error {
	return c.execute(id, "advance order to "+target.String(), func(o *order.Order) (services.Outcome, error) {
		return c.engine.TransitionOrder(o, target)
	})
}

// TransitionItem moves one item of an order one step. station defaults to
// the terminal's station. Finishing the last item also makes the order
// Ready, and both changes are persisted together.
func (c *Coordinator) TransitionItem(orderID, itemID kernel.UUID, target order.ItemStatus, station string) error {
	if station == "" {
		station = c.station
	}
	return c.execute(orderID, "advance item to "+target.String(), func(o *order.Order) (services.Outcome, error) {
		return c.engine.TransitionItem(o, itemID, target, station)
	})
}

func (c *Coordinator) execute(id kernel.UUID, name string, transition func(*order.Order) (services.Outcome, error)) error {
	var out services.Outcome

	err := c.exec.Execute(optimistic.Command[kernel.UUID]{
		Key:  id,
		Name: name,
		Apply: func() (func(), error) {
			c.mu.Lock()
			defer c.mu.Unlock()

			i := c.indexOf(id)
			if i < 0 {
				return nil, errs.NewObjectNotFoundError("order", id)
			}
			prev := c.entries[i]

			var err error
			out, err = transition(prev.order)
			if err != nil {
				return nil, err
			}
			if out.Transition.IsNoOp() {
				return nil, errNoChange
			}

			if out.Order.Status() == order.Delivered {
				c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
			} else {
				c.entries[i] = &entry{order: out.Order, arrivedAt: prev.arrivedAt}
			}
			c.inflight[id]++

			return func() {
				c.mu.Lock()
				defer c.mu.Unlock()

				c.settle(id)
				c.restore(prev)
			}, nil
		},
		Commit: func(ctx context.Context) error {
			if err := c.persist(ctx, out); err != nil {
				return errs.NewMutationError("order", out.Order.Code(), name, err)
			}

			c.mu.Lock()
			c.settle(id)
			c.mu.Unlock()

			if out.ReachedReady() {
				c.notifyReady(out.Order)
			}
			return nil
		},
	})
	if errors.Is(err, errNoChange) {
		return nil
	}
	return err
}

// persist writes every status change of out in one transaction. Writes are
// set operations, so replaying one that already landed is harmless.
func (c *Coordinator) persist(ctx context.Context, out services.Outcome) error {
	uow := c.uow.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tr := out.Transition
	for _, change := range tr.Items {
		it, ok := out.Order.Item(change.ItemID)
		if !ok {
			return errs.NewObjectNotFoundError("item", change.ItemID)
		}
		at := stampOf(it.ReadyAt(), it.PreparingAt())
		if err := uow.ItemRepository().UpdateStatus(ctx, it.ID(), it.Status(), it.Station(), at); err != nil {
			return err
		}
	}

	if tr.OrderChanged() {
		at := c.clock.Now()
		if p := out.Order.PreparingAt(); p != nil && tr.To != order.Delivered {
			at = *p
		}
		if err := uow.OrderRepository().UpdateStatus(ctx, out.Order.ID(), tr.To, at); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func stampOf(times ...*time.Time) time.Time {
	for _, t := range times {
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

// settle must be called with c.mu held.
func (c *Coordinator) settle(id kernel.UUID) {
	c.seq++
	c.settled[id] = c.seq

	if c.inflight[id] <= 1 {
		delete(c.inflight, id)
		return
	}
	c.inflight[id]--
}

// restore puts prev back into the view. Orders that the last snapshot no
// longer lists were finished elsewhere and stay out. Must be called with
// c.mu held.
func (c *Coordinator) restore(prev *entry) {
	id := prev.order.ID()
	if _, ok := c.snapshotIDs[id]; c.loaded && !ok {
		return
	}

	if i := c.indexOf(id); i >= 0 {
		c.entries[i] = prev
		return
	}

	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].order.SubmittedAt().After(prev.order.SubmittedAt())
	})
	c.entries = append(c.entries, nil)
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = prev
}

func (c *Coordinator) mutationFailed(res optimistic.Result[kernel.UUID]) {
	c.mu.Lock()
	c.notice = &Notice{At: c.clock.Now(), Message: res.Err.Error()}
	c.mu.Unlock()

	c.logger.Warn("mutation reverted", "order_id", res.Key.String(), "mutation", res.Name, "error", res.Err)
	c.onError(res.Err)
}

// notifyReady sends the ready notification in the background. Orders without
// a session have nobody to notify.
func (c *Coordinator) notifyReady(o *order.Order) {
	if c.notifier == nil || o.SessionID() == "" {
		return
	}

	n := ports.ReadyNotification{OrderID: o.ID(), SessionID: o.SessionID(), OrderCode: o.Code()}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.mutationTimeout)
		defer cancel()

		if err := c.notifier.NotifyReady(ctx, n); err != nil {
			c.logger.WarnContext(ctx, "ready notification failed",
				"order_id", n.OrderID.String(),
				"error", errs.NewNotificationDispatchError("ready", err),
			)
		}
	}()
}

// Notice returns the last mutation error, if any.
func (c *Coordinator) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// DismissNotice clears the last mutation error.
func (c *Coordinator) DismissNotice() {
	c.mu.Lock()
	c.notice = nil
	c.mu.Unlock()
}
