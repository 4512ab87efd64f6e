package kitchen_test

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryStore is an order store kept in memory. It implements both the
// snapshot loader and the unit of work factory.
type memoryStore struct {
	mu        sync.Mutex
	orders    map[kernel.UUID]order.OrderState
	loadErr   error
	writeErr  error
	loads     int
	commits   int
	loadGate  chan struct{}
	writeGate chan struct{}

	readDone    chan struct{}
	releaseRead chan struct{}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{orders: make(map[kernel.UUID]order.OrderState)}
}

func (s *memoryStore) put(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o.State()
}

func (s *memoryStore) remove(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}

func (s *memoryStore) failWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *memoryStore) failLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

func (s *memoryStore) state(id kernel.UUID) order.OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memoryStore) counts() (loads, commits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads, s.commits
}

func (s *memoryStore) Load(ctx context.Context) ([]*order.Order, error) {
	s.mu.Lock()
	s.loads++
	gate := s.loadGate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	orders, err := s.read()

	s.mu.Lock()
	readDone, release := s.readDone, s.releaseRead
	s.readDone, s.releaseRead = nil, nil
	s.mu.Unlock()

	if readDone != nil {
		close(readDone)
		<-release
	}
	return orders, err
}

// holdAfterRead makes the next Load read the store, close the returned
// channel and wait for release before handing the rows back.
func (s *memoryStore) holdAfterRead() (read <-chan struct{}, release chan<- struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readDone = make(chan struct{})
	s.releaseRead = make(chan struct{})
	return s.readDone, s.releaseRead
}

func (s *memoryStore) read() ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}

	var orders []*order.Order
	for _, st := range s.orders {
		if !st.Status.IsActive() {
			continue
		}
		o, err := order.RestoreOrder(st)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b *order.Order) int {
		return a.SubmittedAt().Compare(b.SubmittedAt())
	})
	return orders, nil
}

func (s *memoryStore) Create() ports.UnitOfWork {
	return &memoryUoW{store: s}
}

type memoryUoW struct {
	store  *memoryStore
	writes []func(map[kernel.UUID]order.OrderState)
}

func (u *memoryUoW) Begin(context.Context) error    { return nil }
func (u *memoryUoW) Rollback(context.Context) error { return nil }

func (u *memoryUoW) Commit(ctx context.Context) error {
	u.store.mu.Lock()
	gate := u.store.writeGate
	u.store.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if u.store.writeErr != nil {
		return u.store.writeErr
	}
	for _, w := range u.writes {
		w(u.store.orders)
	}
	u.writes = nil
	u.store.commits++
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository { return memoryOrders{u} }
func (u *memoryUoW) ItemRepository() ports.ItemRepository   { return memoryItems{u} }

type memoryOrders struct{ uow *memoryUoW }

func (memoryOrders) Add(context.Context, *order.Order) error { return nil }
func (memoryOrders) Get(context.Context, kernel.UUID) (*order.Order, error) {
	return nil, nil
}
func (memoryOrders) GetActive(context.Context) ([]*order.Order, error) { return nil, nil }

func (r memoryOrders) UpdateStatus(_ context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	r.uow.writes = append(r.uow.writes, func(m map[kernel.UUID]order.OrderState) {
		st := m[id]
		if !slices.Contains(status.Predecessors(), st.Status) {
			return
		}
		st.Status = status
		if st.PreparingAt == nil && (status == order.Preparing || status == order.Ready) {
			st.PreparingAt = &at
		}
		m[id] = st
	})
	return nil
}

type memoryItems struct{ uow *memoryUoW }

func (r memoryItems) UpdateStatus(_ context.Context, id kernel.UUID, status order.ItemStatus, station string, at time.Time) error {
	r.uow.writes = append(r.uow.writes, func(m map[kernel.UUID]order.OrderState) {
		for oid, st := range m {
			for i := range st.Items {
				if !st.Items[i].ID.IsEqual(id) || st.Items[i].Status > status {
					continue
				}
				st.Items[i].Status = status
				if station != "" {
					st.Items[i].Station = station
				}
				if st.Items[i].PreparingAt == nil {
					st.Items[i].PreparingAt = &at
				}
				if status == order.ItemReady && st.Items[i].ReadyAt == nil {
					st.Items[i].ReadyAt = &at
				}
				m[oid] = st
			}
		}
	})
	return nil
}

type MockAlerter struct{ mock.Mock }

func (m *MockAlerter) Alert(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockReadyNotifier struct{ mock.Mock }

func (m *MockReadyNotifier) NotifyReady(ctx context.Context, n ports.ReadyNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var baseTime = time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)

// newOrder builds a confirmed order submitted offset after baseTime with
// pending items.
func newOrder(t *testing.T, code string, offset time.Duration, items int) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), code, order.DineIn, baseTime.Add(offset))
	require.NoError(t, err)
	for i := 0; i < items; i++ {
		it, itemErr := order.NewItem(o.ID(), "Dish "+code, 1)
		require.NoError(t, itemErr)
		require.NoError(t, o.AddItem(it.State()))
	}
	return o
}

func withSession(t *testing.T, o *order.Order, session string) *order.Order {
	t.Helper()

	st := o.State()
	st.SessionID = session
	out, err := order.RestoreOrder(st)
	require.NoError(t, err)
	return out
}
