package kitchen_test

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/optimistic"

	"github.com/stretchr/testify/mock"
)

func (s *CoordinatorTestSuite) loaded(orders ...*order.Order) {
	for _, o := range orders {
		s.store.put(o)
	}
	s.reconcile()
}

func (s *CoordinatorTestSuite) TestTransitionOrder_AppliesBeforeCommit() {
	o1 := newOrder(s.T(), "A-1", 0, 2)
	s.loaded(o1)
	s.store.writeGate = make(chan struct{})

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))

	local, ok := s.coordinator.Order(o1.ID())
	s.Require().True(ok)
	s.Equal(order.Preparing, local.Status())
	s.NotNil(local.PreparingAt())
	for _, it := range local.Items() {
		s.Equal(order.ItemPreparing, it.Status())
		s.NotNil(it.PreparingAt())
	}
	s.Equal(order.Confirmed, s.store.state(o1.ID()).Status, "store not written yet")

	close(s.store.writeGate)
	s.coordinator.Wait()

	stored := s.store.state(o1.ID())
	s.Equal(order.Preparing, stored.Status)
	for _, it := range stored.Items {
		s.Equal(order.ItemPreparing, it.Status)
	}
}

func (s *CoordinatorTestSuite) TestTransitionOrder_RollbackRestoresExactState() {
	o1 := newOrder(s.T(), "A-1", 0, 2)
	s.loaded(o1)
	before, _ := s.coordinator.Order(o1.ID())
	s.store.failWrites(errors.New("deadlock detected"))

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()

	after, ok := s.coordinator.Order(o1.ID())
	s.Require().True(ok)
	s.Equal(before.State(), after.State())

	s.Require().Len(s.failures, 1)
	s.ErrorIs(s.failures[0], errs.ErrMutation)
	s.Require().NotNil(s.coordinator.Notice())
	s.Contains(s.coordinator.Notice().Message, "deadlock detected")

	s.coordinator.DismissNotice()
	s.Nil(s.coordinator.Notice())
}

func (s *CoordinatorTestSuite) TestTransitionOrder_RejectsIllegalTarget() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)

	err := s.coordinator.TransitionOrder(o1.ID(), order.Ready)
	s.coordinator.Wait()

	s.ErrorIs(err, errs.ErrIllegalTransition)
	local, _ := s.coordinator.Order(o1.ID())
	s.Equal(order.Confirmed, local.Status())
	_, commits := s.store.counts()
	s.Zero(commits)
}

func (s *CoordinatorTestSuite) TestTransitionOrder_UnknownOrder() {
	s.loaded()

	err := s.coordinator.TransitionOrder(kernel.NewUUID(), order.Preparing)

	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *CoordinatorTestSuite) TestTransitionOrder_RepeatIsNoOp() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()
	first, _ := s.coordinator.Order(o1.ID())
	s.clock.Step(time.Minute)

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()

	second, _ := s.coordinator.Order(o1.ID())
	s.Equal(first.State(), second.State())
	_, commits := s.store.counts()
	s.Equal(1, commits)
}

func (s *CoordinatorTestSuite) TestTransitionOrder_DeliveredLeavesView() {
	a := newOrder(s.T(), "A-1", 0, 1)
	b := newOrder(s.T(), "A-2", time.Minute, 1)
	c := newOrder(s.T(), "A-3", 2*time.Minute, 1)
	for _, o := range []*order.Order{a, b, c} {
		st := o.State()
		st.Status = order.Ready
		st.Items[0].Status = order.ItemReady
		ready, err := order.RestoreOrder(st)
		s.Require().NoError(err)
		s.store.put(ready)
	}
	s.reconcile()
	s.store.writeGate = make(chan struct{})

	s.Require().NoError(s.coordinator.TransitionOrder(b.ID(), order.Delivered))

	_, ok := s.coordinator.Order(b.ID())
	s.False(ok, "delivered order leaves the view at once")

	s.store.failWrites(errors.New("timeout"))
	close(s.store.writeGate)
	s.coordinator.Wait()

	codes := make([]string, 0, 3)
	for _, o := range s.coordinator.Orders() {
		codes = append(codes, o.Code())
	}
	s.Equal([]string{"A-1", "A-2", "A-3"}, codes, "re-inserted at its submission position")
}

func (s *CoordinatorTestSuite) TestTransitionOrder_DeliveredSucceeds() {
	o := newOrder(s.T(), "A-1", 0, 1)
	st := o.State()
	st.Status = order.Ready
	st.Items[0].Status = order.ItemReady
	ready, err := order.RestoreOrder(st)
	s.Require().NoError(err)
	s.loaded(ready)

	s.Require().NoError(s.coordinator.TransitionOrder(o.ID(), order.Delivered))
	s.coordinator.Wait()
	s.reconcile()

	s.Empty(s.coordinator.Orders())
	s.Equal(order.Delivered, s.store.state(o.ID()).Status)
}

func (s *CoordinatorTestSuite) TestTransitionItem_RollbackKeepsOrderStatus() {
	o1 := newOrder(s.T(), "A-1", 0, 2)
	s.loaded(o1)
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()
	s.store.failWrites(errors.New("write failed"))

	itemID := o1.Items()[0].ID()
	s.Require().NoError(s.coordinator.TransitionItem(o1.ID(), itemID, order.ItemReady, ""))
	local, _ := s.coordinator.Order(o1.ID())
	it, _ := local.Item(itemID)
	s.Equal(order.ItemReady, it.Status())

	s.coordinator.Wait()

	local, _ = s.coordinator.Order(o1.ID())
	it, _ = local.Item(itemID)
	s.Equal(order.ItemPreparing, it.Status())
	s.Nil(it.ReadyAt())
	s.Equal(order.Preparing, local.Status())
}

func (s *CoordinatorTestSuite) TestTransitionItem_StampsTerminalStation() {
	o1 := newOrder(s.T(), "A-1", 0, 2)
	s.loaded(o1)
	first, second := o1.Items()[0].ID(), o1.Items()[1].ID()

	s.Require().NoError(s.coordinator.TransitionItem(o1.ID(), first, order.ItemPreparing, ""))
	s.Require().NoError(s.coordinator.TransitionItem(o1.ID(), second, order.ItemPreparing, "fryer"))
	s.coordinator.Wait()

	stored := s.store.state(o1.ID())
	s.Equal("grill", stored.Items[0].Station)
	s.Equal("fryer", stored.Items[1].Station)
	s.Equal(order.Confirmed, stored.Status)
}

func (s *CoordinatorTestSuite) TestTransitionItem_LastItemMakesOrderReadyAndNotifies() {
	o1 := withSession(s.T(), newOrder(s.T(), "A-1", 0, 2), "session-42")
	s.loaded(o1)
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))

	s.notifier.On("NotifyReady", mock.Anything, ports.ReadyNotification{
		OrderID:   o1.ID(),
		SessionID: "session-42",
		OrderCode: "A-1",
	}).Return(nil).Once()

	for _, it := range o1.Items() {
		s.Require().NoError(s.coordinator.TransitionItem(o1.ID(), it.ID(), order.ItemReady, ""))
	}
	local, _ := s.coordinator.Order(o1.ID())
	s.Equal(order.Ready, local.Status())

	s.coordinator.Wait()

	s.Equal(order.Ready, s.store.state(o1.ID()).Status)
	s.notifier.AssertNumberOfCalls(s.T(), "NotifyReady", 1)
}

func (s *CoordinatorTestSuite) TestReady_NoSessionSkipsNotification() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Ready))
	s.coordinator.Wait()

	s.notifier.AssertNotCalled(s.T(), "NotifyReady", mock.Anything, mock.Anything)
}

func (s *CoordinatorTestSuite) TestReady_FailedCommitSkipsNotification() {
	o1 := withSession(s.T(), newOrder(s.T(), "A-1", 0, 1), "session-1")
	s.loaded(o1)
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()
	s.store.failWrites(errors.New("down"))

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Ready))
	s.coordinator.Wait()

	s.notifier.AssertNotCalled(s.T(), "NotifyReady", mock.Anything, mock.Anything)
	local, _ := s.coordinator.Order(o1.ID())
	s.Equal(order.Preparing, local.Status())
}

func (s *CoordinatorTestSuite) TestReady_NotificationFailureIsIgnored() {
	o1 := withSession(s.T(), newOrder(s.T(), "A-1", 0, 1), "session-1")
	s.loaded(o1)
	s.notifier.On("NotifyReady", mock.Anything, mock.Anything).Return(errors.New("push gateway down")).Once()

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Ready))
	s.coordinator.Wait()

	s.Empty(s.failures)
	s.Equal(order.Ready, s.store.state(o1.ID()).Status)
}

func (s *CoordinatorTestSuite) TestQueuedMutationsRollBackTogether() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)
	before, _ := s.coordinator.Order(o1.ID())
	s.store.writeGate = make(chan struct{})

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Ready))
	local, _ := s.coordinator.Order(o1.ID())
	s.Equal(order.Ready, local.Status())

	s.store.failWrites(errors.New("down"))
	close(s.store.writeGate)
	s.coordinator.Wait()

	after, _ := s.coordinator.Order(o1.ID())
	s.Equal(before.State(), after.State())
	s.Len(s.failures, 2)
}

func (s *CoordinatorTestSuite) TestReconcileKeepsInFlightState() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)
	s.store.writeGate = make(chan struct{})

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.reconcile()

	local, _ := s.coordinator.Order(o1.ID())
	s.Equal(order.Preparing, local.Status(), "stale snapshot does not undo a pending mutation")

	close(s.store.writeGate)
	s.coordinator.Wait()
	s.reconcile()

	local, _ = s.coordinator.Order(o1.ID())
	s.Equal(order.Preparing, local.Status())
}

func (s *CoordinatorTestSuite) TestReconcile_SnapshotReadBeforeCommitDoesNotUndoIt() {
	o1 := newOrder(s.T(), "A-1", 0, 2)
	o2 := newOrder(s.T(), "A-2", time.Minute, 1)
	s.loaded(o1, o2)

	read, release := s.store.holdAfterRead()
	done := make(chan error, 1)
	go func() { done <- s.coordinator.Reconcile(context.Background()) }()
	<-read

	s.Require().NoError(s.coordinator.TransitionOrder(o1.ID(), order.Preparing))
	s.coordinator.Wait()
	s.Require().Equal(order.Preparing, s.store.state(o1.ID()).Status)

	close(release)
	s.Require().NoError(<-done)

	local, ok := s.coordinator.Order(o1.ID())
	s.Require().True(ok)
	s.Equal(order.Preparing, local.Status(), "rows read before the commit are stale")
	for _, it := range local.Items() {
		s.Equal(order.ItemPreparing, it.Status())
	}

	action, err := s.coordinator.Dispatch("1")
	s.Require().NoError(err)
	s.Require().NotNil(action.OrderID)
	s.Equal(o2.ID(), *action.OrderID, "slot 1 still shows the order that was queued")
	s.coordinator.Wait()

	s.reconcile()
	local, _ = s.coordinator.Order(o1.ID())
	s.Equal(order.Preparing, local.Status())
}

func (s *CoordinatorTestSuite) TestClosedCoordinatorRejectsMutations() {
	o1 := newOrder(s.T(), "A-1", 0, 1)
	s.loaded(o1)
	s.Require().NoError(s.coordinator.Close(context.Background()))

	err := s.coordinator.TransitionOrder(o1.ID(), order.Preparing)

	s.ErrorIs(err, optimistic.ErrClosed)
}
