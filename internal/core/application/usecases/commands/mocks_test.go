package commands_test

import (
	"context"
	"time"

	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTerminal struct{ mock.Mock }

func (m *MockTerminal) TransitionOrder(id kernel.UUID, target order.Status) error {
	return m.Called(id, target).Error(0)
}

func (m *MockTerminal) TransitionItem(orderID, itemID kernel.UUID, target order.ItemStatus, station string) error {
	return m.Called(orderID, itemID, target, station).Error(0)
}

func (m *MockTerminal) Dispatch(symbol string) (kitchen.Action, error) {
	args := m.Called(symbol)
	return args.Get(0).(kitchen.Action), args.Error(1)
}

func (m *MockTerminal) Toggle(t kitchen.Toggle) (kitchen.Preferences, error) {
	args := m.Called(t)
	return args.Get(0).(kitchen.Preferences), args.Error(1)
}
