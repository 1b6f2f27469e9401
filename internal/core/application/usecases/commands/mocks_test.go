package commands_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/agent"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetFirstUnassigned(ctx context.Context) (*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetLeastLoaded(ctx context.Context) (*agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
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

type MockAgentUoW struct{ mock.Mock }

func (m *MockAgentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAgentUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

// Test fixtures shared across the command handler tests.

func customerActor(t *testing.T) auth.ActorContext {
	t.Helper()

	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleCustomer, nil)
	require.NoError(t, err)
	return actor
}

func agentActor(t *testing.T) auth.ActorContext {
	t.Helper()

	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleFulfillmentAgent, nil)
	require.NoError(t, err)
	return actor
}

func adminActor(t *testing.T) auth.ActorContext {
	t.Helper()

	actor, err := auth.NewActorContext(kernel.NewUUID(), auth.RoleAdministrator, nil)
	require.NoError(t, err)
	return actor
}

func authZero() auth.ActorContext {
	return auth.ActorContext{}
}

func testItems(t *testing.T) []order.LineItem {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 1, 1250)
	require.NoError(t, err)
	return []order.LineItem{item}
}

// pendingOrderFor builds a fresh pending order owned by the given customer.
func pendingOrderFor(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	number, err := kernel.NewOrderNumber(now, 1)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), number, customerID, testItems(t), customerID, now)
	require.NoError(t, err)
	return o
}

// confirmedOrderAssignedTo builds a confirmed order assigned to the given agent.
func confirmedOrderAssignedTo(t *testing.T, agentID kernel.UUID) *order.Order {
	t.Helper()

	o := pendingOrderFor(t, kernel.NewUUID())
	require.NoError(t, o.Confirm(kernel.NewUUID(), "", time.Now().UTC()))
	require.NoError(t, o.AssignAgent(agentID, time.Now().UTC()))
	return o
}
