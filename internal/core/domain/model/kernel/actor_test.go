package kernel_test

import (
	"testing"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		input   string
		want    kernel.Role
		wantErr bool
	}{
		{"department", kernel.RoleDepartment, false},
		{"Warehouse", kernel.RoleWarehouse, false},
		{" driver ", kernel.RoleDriver, false},
		{"ADMIN", kernel.RoleAdmin, false},
		{"", "", true},
		{"courier", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			role, err := kernel.ParseRole(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestNewActor(t *testing.T) {
	department := kernel.NewUUID()
	warehouseA := kernel.NewUUID()
	warehouseB := kernel.NewUUID()

	t.Run("department actor requires department", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDepartment, nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("department actor", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDepartment, &department, nil)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.Is(kernel.RoleDepartment))
		assert.True(t, actor.BelongsToDepartment(department))
		assert.False(t, actor.BelongsToDepartment(kernel.NewUUID()))
	})

	t.Run("warehouse scope is deduplicated", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil,
			[]kernel.UUID{warehouseA, warehouseB, warehouseA})

		require.NoError(t, err)
		assert.Len(t, actor.WarehouseIDs(), 2)
		assert.True(t, actor.HasWarehouseScope())
		assert.True(t, actor.CanAccessWarehouse(warehouseB))
		assert.False(t, actor.CanAccessWarehouse(kernel.NewUUID()))
		assert.Nil(t, actor.SingleWarehouse())
	})

	t.Run("unscoped warehouse actor reaches every warehouse", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, nil)

		require.NoError(t, err)
		assert.False(t, actor.HasWarehouseScope())
		assert.True(t, actor.CanAccessWarehouse(kernel.NewUUID()))
	})

	t.Run("single warehouse", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, []kernel.UUID{warehouseA})

		require.NoError(t, err)
		require.NotNil(t, actor.SingleWarehouse())
		assert.True(t, actor.SingleWarehouse().IsEqual(warehouseA))
	})

	t.Run("invalid fields are joined", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.Role("courier"), nil, []kernel.UUID{{}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var actor kernel.Actor

		assert.ErrorIs(t, actor.Validate(), kernel.ErrActorIsNotConstructed)
	})

	t.Run("returned scope is a copy", func(t *testing.T) {
		actor, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, []kernel.UUID{warehouseA})

		ids := actor.WarehouseIDs()
		ids[0] = warehouseB

		assert.True(t, actor.CanAccessWarehouse(warehouseA))
		assert.False(t, actor.CanAccessWarehouse(warehouseB))
	})
}
