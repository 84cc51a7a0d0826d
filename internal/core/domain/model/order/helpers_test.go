package order_test

import (
	"testing"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

type actors struct {
	department kernel.UUID
	warehouse  kernel.UUID
	requester  kernel.Actor
	keeper     kernel.Actor
	driver     kernel.Actor
	admin      kernel.Actor
}

func newActors(t *testing.T) actors {
	t.Helper()

	a := actors{department: kernel.NewUUID(), warehouse: kernel.NewUUID()}
	var err error

	a.requester, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleDepartment, &a.department, nil)
	require.NoError(t, err)
	a.keeper, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, []kernel.UUID{a.warehouse})
	require.NoError(t, err)
	a.driver, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleDriver, nil, nil)
	require.NoError(t, err)
	a.admin, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, nil, nil)
	require.NoError(t, err)

	return a
}

func newPendingOrder(t *testing.T, a actors, drafts ...order.ItemDraft) *order.Order {
	t.Helper()

	if len(drafts) == 0 {
		drafts = []order.ItemDraft{{Name: "Gloves", Quantity: 10, Unit: "box"}}
	}
	items, _, err := order.NewItems(drafts)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), 1, a.requester, a.department, nil, items, "", baseTime)
	require.NoError(t, err)
	return o
}

func newApprovedOrder(t *testing.T, a actors, drafts ...order.ItemDraft) *order.Order {
	t.Helper()

	o := newPendingOrder(t, a, drafts...)
	require.NoError(t, o.Transition(a.keeper, order.Approved, order.TransitionOptions{}, baseTime.Add(time.Minute)))
	return o
}

func newPreparingOrder(t *testing.T, a actors, drafts ...order.ItemDraft) *order.Order {
	t.Helper()

	o := newApprovedOrder(t, a, drafts...)
	worksheet, err := o.PreparationWorksheet(a.keeper)
	require.NoError(t, err)
	_, err = o.CommitPreparation(a.keeper, worksheet, "", baseTime.Add(2*time.Minute))
	require.NoError(t, err)
	return o
}
