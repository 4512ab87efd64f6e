package kitchen

import (
	"context"
	"slices"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
)

// SyncStatus describes the outcome of the most recent reconciliation.
type SyncStatus struct {
	// At is the time of the last successful reconciliation.
	At time.Time `json:"at"`

	// Error is the last fetch failure, cleared by the next success.
	Error string `json:"error,omitempty"`

	// Failures counts consecutive failed reconciliations.
	Failures int `json:"failures"`
}

// Trigger starts a reconciliation in the background. Triggers that arrive
// while one is running are folded into a single follow-up pass.
func (c *Coordinator) Trigger(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_ = c.Reconcile(ctx)
	}()
}

// Reconcile replaces the local view with the current snapshot. If another
// reconciliation is already running, the call only marks that one to run
// again and returns nil.
//
// A failed fetch keeps the previous view and is returned as a
// TransientFetchError.
func (c *Coordinator) Reconcile(ctx context.Context) error {
	c.mu.Lock()
	if c.reconciling {
		c.pending = true
		c.mu.Unlock()
		return nil
	}
	c.reconciling = true
	c.mu.Unlock()

	for {
		err := c.reconcileOnce(ctx)

		c.mu.Lock()
		if !c.pending || ctx.Err() != nil {
			c.reconciling = false
			c.pending = false
			c.mu.Unlock()
			return err
		}
		c.pending = false
		c.mu.Unlock()
	}
}

func (c *Coordinator) reconcileOnce(ctx context.Context) error {
	c.mu.Lock()
	since := c.seq
	c.mu.Unlock()

	snapshot, err := c.loader.Load(ctx)
	if err != nil {
		fetchErr := errs.NewTransientFetchError(err)

		c.mu.Lock()
		c.lastSync.Error = fetchErr.Error()
		c.lastSync.Failures++
		c.mu.Unlock()

		c.logger.WarnContext(ctx, "snapshot fetch failed, keeping previous view", "error", err)
		return fetchErr
	}

	arrived, muted := c.merge(snapshot, since)

	if arrived > 0 {
		c.logger.InfoContext(ctx, "new orders arrived", "count", arrived)
		if !muted {
			c.alert(ctx)
		}
	}

	return nil
}

// merge installs snapshot as the new view and returns how many confirmed
// orders appeared since the previous snapshot. The first snapshot never
// counts as arrivals. since is the mutation sequence number observed before
// the snapshot was loaded; orders with a mutation settled after it keep their
// local state.
func (c *Coordinator) merge(snapshot []*order.Order, since uint64) (int, bool) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := make(map[kernel.UUID]*entry, len(c.entries))
	for _, e := range c.entries {
		previous[e.order.ID()] = e
	}

	ids := make(map[kernel.UUID]struct{}, len(snapshot))
	entries := make([]*entry, 0, len(snapshot))
	arrived := 0

	for _, o := range snapshot {
		id := o.ID()
		ids[id] = struct{}{}

		if c.isLocal(id, since) {
			// local state wins until a snapshot loaded after its commit
			// confirms it; a missing entry means the order was delivered
			// locally
			if e, ok := previous[id]; ok {
				entries = append(entries, e)
			}
			continue
		}

		e := &entry{order: o}
		if prev, ok := previous[id]; ok {
			e.arrivedAt = prev.arrivedAt
		}

		_, seen := c.snapshotIDs[id]
		if c.loaded && !seen && o.Status() == order.Confirmed {
			e.arrivedAt = now
			arrived++
		}
		entries = append(entries, e)
	}

	for id, e := range previous {
		if _, ok := ids[id]; !ok && c.isLocal(id, since) {
			entries = append(entries, e)
		}
	}

	for id, at := range c.settled {
		if at <= since {
			delete(c.settled, id)
		}
	}

	slices.SortStableFunc(entries, bySubmission)

	c.entries = entries
	c.snapshotIDs = ids
	c.loaded = true
	c.lastSync = SyncStatus{At: now}

	return arrived, c.prefs.Muted
}

// isLocal reports whether the local entry of id is newer than a snapshot
// loaded at since. Must be called with c.mu held.
func (c *Coordinator) isLocal(id kernel.UUID, since uint64) bool {
	return c.inflight[id] > 0 || c.settled[id] > since
}

func (c *Coordinator) alert(ctx context.Context) {
	if c.alerter == nil {
		return
	}
	if err := c.alerter.Alert(ctx); err != nil {
		c.logger.WarnContext(ctx, "new order alert failed", "error", err)
	}
}

// LastSync reports the outcome of the last reconciliation.
func (c *Coordinator) LastSync() SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastSync
}

// IsNewlyArrived reports whether the order is still inside its highlight
// window.
func (c *Coordinator) IsNewlyArrived(id kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	return i >= 0 && c.highlighted(c.entries[i])
}

func (c *Coordinator) highlighted(e *entry) bool {
	return !e.arrivedAt.IsZero() && c.clock.Since(e.arrivedAt) < HighlightWindow
}

func bySubmission(a, b *entry) int {
	return a.order.SubmittedAt().Compare(b.order.SubmittedAt())
}
