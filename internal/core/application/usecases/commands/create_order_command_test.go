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

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	f := newFixture(t)
	drafts := []order.ItemDraft{{Name: "Gloves", Quantity: 10, Unit: "box"}}

	cmd, err := commands.NewCreateOrderCommand(f.requester, f.department, &f.warehouse, drafts, "  urgent ", " key-1 ")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.Equal(t, f.department, cmd.DepartmentID())
	require.NotNil(t, cmd.WarehouseID())
	assert.Equal(t, f.warehouse, *cmd.WarehouseID())
	assert.Equal(t, drafts, cmd.Items())
	assert.Equal(t, "urgent", cmd.Notes())
	assert.Equal(t, "key-1", cmd.IdempotencyKey())
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := commands.NewCreateOrderCommand(f.requester, kernel.UUID{}, nil, nil, "", "")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "departmentId")
	assert.Contains(t, err.Error(), "items")
}

func TestNewCreateOrderCommand_ActorNotConstructed(t *testing.T) {
	f := newFixture(t)

	_, err := commands.NewCreateOrderCommand(kernel.Actor{}, f.department, nil,
		[]order.ItemDraft{{Name: "Gloves", Quantity: 1}}, "", "")
	require.ErrorIs(t, err, kernel.ErrActorIsNotConstructed)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	cmd := commands.CreateOrderCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
