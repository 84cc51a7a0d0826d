package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/order"
	"supply/internal/core/domain/services"
	"supply/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommitHandler(factory commands.UoWFactory) commands.CommitPreparationCommandHandler {
	return commands.NewCommitPreparationCommandHandler(factory, services.NewReconciler(), slog.Default())
}

func TestCommitPreparationCommandHandler_Handle_PartialSupply(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(), []order.PreparationInput{
		{AvailableQuantity: 4, Notes: "last boxes"},
		{AvailableQuantity: 5},
	}, "", versionOf(0))
	require.NoError(t, err)

	twoLogs := mock.MatchedBy(func(logs []history.ItemLog) bool {
		return len(logs) == 2 &&
			logs[0].Record().AvailableQuantity == 4 &&
			logs[0].Record().WarehouseID == f.warehouse &&
			logs[1].Record().AvailableQuantity == 5
	})

	repo := new(MockOrderRepository)
	hist := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(hist).Once(),
		hist.On("AddItemLogs", ctx, twoLogs).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Preparing, result.Order.Status())
	assert.Equal(t, []int{0}, result.Shortages)
	assert.Equal(t, 1, result.Summary.Short)
	assert.Equal(t, 1, result.Summary.Fulfilled)
	assert.Equal(t, "last boxes", result.Order.Items()[0].Notes())
	require.Len(t, result.Order.PendingHistory(), 1)
	assert.Equal(t, history.KindPreparation, result.Order.PendingHistory()[0].Kind())
	repo.AssertExpectations(t)
	hist.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCommitPreparationCommandHandler_Handle_NothingAvailable(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(), []order.PreparationInput{
		{IsUnavailable: true},
		{AvailableQuantity: 0},
	}, "", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrNoItemAvailable)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, order.Approved, o.Status())
	assert.Equal(t, 10, o.Items()[0].Quantity())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "HistoryRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCommitPreparationCommandHandler_Handle_NegativeQuantityClampsToZero(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(), []order.PreparationInput{
		{AvailableQuantity: -3},
		{AvailableQuantity: 5},
	}, "", nil)
	require.NoError(t, err)

	clamped := mock.MatchedBy(func(logs []history.ItemLog) bool {
		return len(logs) == 2 &&
			logs[0].Record().AvailableQuantity == 0 &&
			logs[0].Record().IsUnavailable &&
			logs[1].Record().AvailableQuantity == 5
	})

	repo := new(MockOrderRepository)
	hist := new(MockHistoryRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("HistoryRepository").Return(hist).Once()
	hist.On("AddItemLogs", ctx, clamped).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Preparing, result.Order.Status())
	assert.Empty(t, result.Shortages)
	assert.Equal(t, 1, result.Summary.Unavailable)
	assert.Equal(t, 1, result.Summary.Fulfilled)
	hist.AssertExpectations(t)
}

func TestCommitPreparationCommandHandler_Handle_InputCountMismatch(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(),
		[]order.PreparationInput{{AvailableQuantity: 1}}, "", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Approved, o.Status())
}

// Two operators load the same APPROVED order; the second commit sees the
// locked row already in PREPARING and fails without writing.
func TestCommitPreparationCommandHandler_Handle_SecondCommitLoses(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	inputs := []order.PreparationInput{{AvailableQuantity: 10}, {AvailableQuantity: 5}}
	first, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(), inputs, "", nil)
	require.NoError(t, err)
	second, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(), inputs, "", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	hist := new(MockHistoryRepository)
	firstUoW := new(MockUoW)
	firstUoW.On("Begin", ctx).Return(nil).Once()
	firstUoW.On("OrderRepository").Return(repo).Once()
	firstUoW.On("HistoryRepository").Return(hist).Once()
	firstUoW.On("Commit", ctx).Return(nil).Once()
	firstUoW.On("Rollback", ctx).Return(nil).Once()

	secondUoW := new(MockUoW)
	secondUoW.On("Begin", ctx).Return(nil).Once()
	secondUoW.On("OrderRepository").Return(repo).Once()
	secondUoW.On("Rollback", ctx).Return(nil).Once()

	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Twice()
	repo.On("Update", ctx, o).Return(nil).Once()
	hist.On("AddItemLogs", ctx, mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(firstUoW).Once()
	factory.On("Create").Return(secondUoW).Once()

	h := newCommitHandler(factory)
	_, err = h.Handle(ctx, first)
	require.NoError(t, err)

	_, err = h.Handle(ctx, second)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	secondUoW.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNumberOfCalls(t, "Update", 1)
	hist.AssertNumberOfCalls(t, "AddItemLogs", 1)
}

func TestCommitPreparationCommandHandler_Handle_StaleVersion(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(),
		[]order.PreparationInput{{AvailableQuantity: 10}, {AvailableQuantity: 5}}, "", versionOf(4))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.Approved, o.Status())
}

func TestCommitPreparationCommandHandler_Handle_ItemLogError(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	o := f.approved(t)

	cmd, err := commands.NewCommitPreparationCommand(f.keeper, o.ID(),
		[]order.PreparationInput{{AvailableQuantity: 10}, {AvailableQuantity: 5}}, "", nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	hist := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(hist).Once(),
		hist.On("AddItemLogs", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCommitHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.EqualError(t, err, "insert failed")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCommitPreparationCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	h := newCommitHandler(factory)

	_, err := h.Handle(t.Context(), commands.CommitPreparationCommand{})
	require.ErrorIs(t, err, commands.ErrCommitPreparationCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
