package commands_test

import (
	"context"
	"testing"
	"time"

	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) NextSeq(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

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

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) AddEntries(ctx context.Context, entries ...history.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockHistoryRepository) AddItemLogs(ctx context.Context, logs ...history.ItemLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
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

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Lookup(ctx context.Context, actorID kernel.UUID, key string) (kernel.UUID, bool, error) {
	args := m.Called(ctx, actorID, key)
	return args.Get(0).(kernel.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Remember(ctx context.Context, actorID kernel.UUID, key string, id kernel.UUID) error {
	args := m.Called(ctx, actorID, key, id)
	return args.Error(0)
}

var createdAt = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

type fixture struct {
	department kernel.UUID
	warehouse  kernel.UUID
	requester  kernel.Actor
	keeper     kernel.Actor
	driver     kernel.Actor
	admin      kernel.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{department: kernel.NewUUID(), warehouse: kernel.NewUUID()}
	var err error

	f.requester, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleDepartment, &f.department, nil)
	require.NoError(t, err)
	f.keeper, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, []kernel.UUID{f.warehouse})
	require.NoError(t, err)
	f.driver, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleDriver, nil, nil)
	require.NoError(t, err)
	f.admin, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, nil, nil)
	require.NoError(t, err)

	return f
}

func (f fixture) pending(t *testing.T, drafts ...order.ItemDraft) *order.Order {
	t.Helper()

	if len(drafts) == 0 {
		drafts = []order.ItemDraft{
			{Name: "Gloves", Quantity: 10, Unit: "box"},
			{Name: "Masks", Quantity: 5},
		}
	}
	items, _, err := order.NewItems(drafts)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), 7, f.requester, f.department, nil, items, "", createdAt)
	require.NoError(t, err)
	return o
}

func (f fixture) approved(t *testing.T, drafts ...order.ItemDraft) *order.Order {
	t.Helper()

	o := f.pending(t, drafts...)
	require.NoError(t, o.Transition(f.keeper, order.Approved, order.TransitionOptions{}, createdAt.Add(time.Minute)))
	o.ClearPendingHistory()
	return o
}

func (f fixture) preparing(t *testing.T) *order.Order {
	t.Helper()

	o := f.approved(t)
	worksheet, err := o.PreparationWorksheet(f.keeper)
	require.NoError(t, err)
	_, err = o.CommitPreparation(f.keeper, worksheet, "", createdAt.Add(2*time.Minute))
	require.NoError(t, err)
	o.ClearPendingHistory()
	return o
}

func versionOf(v int64) *int64 {
	return &v
}
