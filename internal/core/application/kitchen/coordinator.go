package kitchen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/optimistic"

	"k8s.io/utils/clock"
)

const (
	// HighlightWindow is how long a newly arrived order stays highlighted.
	HighlightWindow = 3 * time.Second

	CoarseTickInterval = time.Minute
	FineTickInterval   = time.Second

	defaultMutationTimeout = 10 * time.Second
)

var (
	ErrLoaderIsRequired     = errors.New("snapshot loader is required")
	ErrUnitOfWorkIsRequired = errors.New("unit of work factory is required")
)

// Deps are the collaborators of a Coordinator. Notifier and Alerter may be
// nil, in which case the side effect is skipped.
type Deps struct {
	Loader     ports.SnapshotLoader
	UnitOfWork ports.UnitOfWorkFactory
	Notifier   ports.ReadyNotifier
	Alerter    ports.Alerter
	Clock      clock.PassiveClock
	Logger     *slog.Logger
}

type Option func(*Coordinator)

// WithStation sets the station recorded on items started from this terminal.
func WithStation(station string) Option {
	return func(c *Coordinator) { c.station = station }
}

// WithMutationTimeout bounds every durable write.
func WithMutationTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.mutationTimeout = d }
}

// WithKeyMap replaces DefaultKeyMap.
func WithKeyMap(km KeyMap) Option {
	return func(c *Coordinator) { c.keys = km }
}

// WithPreferences sets the initial display preferences.
func WithPreferences(p Preferences) Option {
	return func(c *Coordinator) { c.prefs = p }
}

// WithErrorHandler registers a callback for mutation failures, after the
// local view has been rolled back.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Coordinator) { c.onError = fn }
}

// WithCadenceListener registers a callback fired with the new tick interval
// whenever the fine timer preference changes.
func WithCadenceListener(fn func(time.Duration)) Option {
	return func(c *Coordinator) { c.onCadence = fn }
}

// Coordinator owns the local view of a single terminal.
type Coordinator struct {
	loader   ports.SnapshotLoader
	uow      ports.UnitOfWorkFactory
	notifier ports.ReadyNotifier
	alerter  ports.Alerter
	clock    clock.PassiveClock
	engine   services.TransitionEngine
	exec     *optimistic.Executor[kernel.UUID]
	logger   *slog.Logger

	station         string
	mutationTimeout time.Duration
	keys            KeyMap
	onError         func(error)
	onCadence       func(time.Duration)

	mu sync.Mutex
	// entries is the local view sorted by submission time.
	entries []*entry
	// snapshotIDs holds the ids of the last authoritative snapshot.
	snapshotIDs map[kernel.UUID]struct{}
	loaded      bool
	// inflight counts applied but uncommitted mutations per order.
	inflight map[kernel.UUID]int
	// settled records, per order, the sequence number of its last settled
	// mutation. Snapshots loaded before that number are stale for the order.
	settled     map[kernel.UUID]uint64
	seq         uint64
	reconciling bool
	pending     bool
	tickAt      time.Time
	prefs       Preferences
	lastSync    SyncStatus
	notice      *Notice

	wg sync.WaitGroup
}

// entry is one order in the local view. Entries are replaced, never mutated,
// so an old *entry is a valid snapshot of the past.
type entry struct {
	order     *order.Order
	arrivedAt time.Time
}

func New(deps Deps, opts ...Option) (*Coordinator, error) {
	if deps.Loader == nil {
		return nil, ErrLoaderIsRequired
	}
	if deps.UnitOfWork == nil {
		return nil, ErrUnitOfWorkIsRequired
	}
	if deps.Clock == nil {
		deps.Clock = clock.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	c := &Coordinator{
		loader:          deps.Loader,
		uow:             deps.UnitOfWork,
		notifier:        deps.Notifier,
		alerter:         deps.Alerter,
		clock:           deps.Clock,
		engine:          services.NewTransitionEngine(deps.Clock),
		logger:          deps.Logger.With("component", "kitchen_coordinator"),
		mutationTimeout: defaultMutationTimeout,
		keys:            DefaultKeyMap(),
		onError:         func(error) {},
		onCadence:       func(time.Duration) {},
		snapshotIDs:     make(map[kernel.UUID]struct{}),
		inflight:        make(map[kernel.UUID]int),
		settled:         make(map[kernel.UUID]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.keys.Validate(); err != nil {
		return nil, err
	}

	c.exec = optimistic.New(deps.Logger,
		optimistic.WithCommitTimeout[kernel.UUID](c.mutationTimeout),
		optimistic.WithDone(c.mutationFailed),
	)
	c.tickAt = c.clock.Now()

	return c, nil
}

// Tick moves the time used for elapsed timers to now and returns it.
func (c *Coordinator) Tick() time.Time {
	now := c.clock.Now()

	c.mu.Lock()
	c.tickAt = now
	c.mu.Unlock()

	return now
}

// TickInterval is the cadence the elapsed timers should be refreshed at.
func (c *Coordinator) TickInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.prefs.tickInterval()
}

// Wait blocks until every scheduled commit, notification and triggered
// reconciliation has finished.
func (c *Coordinator) Wait() {
	c.exec.Wait()
	c.wg.Wait()
	c.exec.Wait()
}

// Close stops accepting mutations and waits for outstanding work until ctx
// is done.
func (c *Coordinator) Close(ctx context.Context) error {
	err := c.exec.Close(ctx)

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (c *Coordinator) indexOf(id kernel.UUID) int {
	for i, e := range c.entries {
		if e.order.ID().IsEqual(id) {
			return i
		}
	}
	return -1
}

// Order returns a copy of an order in the local view.
func (c *Coordinator) Order(id kernel.UUID) (*order.Order, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.entries[i].order.Clone(), true
	}
	return nil, false
}

// Orders returns copies of every order in the local view in display order.
func (c *Coordinator) Orders() []*order.Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	orders := make([]*order.Order, 0, len(c.entries))
	for _, e := range c.entries {
		orders = append(orders, e.order.Clone())
	}
	return orders
}
