package commands_test

import (
	"testing"
	"time"

	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateNotesCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)

	t.Run("department edits pending order", func(t *testing.T) {
		ctx := t.Context()
		o := f.pending(t)
		cmd, err := commands.NewUpdateNotesCommand(f.requester, o.ID(), " deliver to ward 4 ", versionOf(0))
		require.NoError(t, err)

		factory, uow, _ := expectMutation(t, o, nil)
		h := commands.NewUpdateNotesCommandHandler(factory)
		got, err := h.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, "deliver to ward 4", got.Notes())
		require.Len(t, got.PendingHistory(), 1)
		assert.Equal(t, history.KindNotesUpdated, got.PendingHistory()[0].Kind())
		uow.AssertCalled(t, "Commit", ctx)
	})

	t.Run("delivered order is frozen", func(t *testing.T) {
		ctx := t.Context()
		o := f.preparing(t)
		require.NoError(t, o.MarkReady(f.keeper, "", createdAt.Add(3*time.Minute)))
		require.NoError(t, o.Transition(f.driver, order.Delivered, order.TransitionOptions{}, createdAt.Add(4*time.Minute)))
		o.ClearPendingHistory()

		cmd, err := commands.NewUpdateNotesCommand(f.admin, o.ID(), "late note", nil)
		require.NoError(t, err)

		factory, uow, repo := expectMutation(t, o, nil)
		h := commands.NewUpdateNotesCommandHandler(factory)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("other department", func(t *testing.T) {
		ctx := t.Context()
		o := f.pending(t)
		stranger := newFixture(t).requester
		cmd, err := commands.NewUpdateNotesCommand(stranger, o.ID(), "mine now", nil)
		require.NoError(t, err)

		factory, _, _ := expectMutation(t, o, nil)
		h := commands.NewUpdateNotesCommandHandler(factory)
		_, err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Empty(t, o.Notes())
	})

	t.Run("zero value command", func(t *testing.T) {
		h := commands.NewUpdateNotesCommandHandler(new(MockOrderUoWFactory))
		_, err := h.Handle(t.Context(), commands.UpdateNotesCommand{})
		require.ErrorIs(t, err, commands.ErrUpdateNotesCommandIsNotConstructed)
	})
}
