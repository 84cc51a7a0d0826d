package commands_test

import (
	"testing"

	"supply/internal/core/application/usecases/commands"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		version := int64(2)
		cmd, err := commands.NewTransitionOrderCommand(f.keeper, orderID, order.Approved, " ok ", &f.warehouse, &version)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())

		version = 9
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, order.Approved, cmd.Target())
		assert.Equal(t, "ok", cmd.Note())
		assert.Equal(t, f.warehouse, *cmd.WarehouseID())
		assert.Equal(t, int64(2), *cmd.ExpectedVersion(), "version is copied")
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(f.keeper, orderID, order.Unknown, "", nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing order id", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(f.keeper, kernel.UUID{}, order.Approved, "", nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative version", func(t *testing.T) {
		_, err := commands.NewTransitionOrderCommand(f.keeper, orderID, order.Approved, "", nil, versionOf(-1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value", func(t *testing.T) {
		require.ErrorIs(t, commands.TransitionOrderCommand{}.Validate(),
			commands.ErrTransitionOrderCommandIsNotConstructed)
	})
}
