package order_test

import (
	"testing"
	"time"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	a := newActors(t)
	items, _, err := order.NewItems([]order.ItemDraft{{Name: "Gloves", Quantity: 10, Unit: "box"}})
	require.NoError(t, err)

	t.Run("department creates for own department", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), 42, a.requester, a.department, nil, items, " urgent ", baseTime)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "ORD-000042", o.Number())
		assert.Equal(t, "urgent", o.Notes())
		assert.True(t, o.CreatedBy().IsEqual(a.requester.ID()))
		assert.Equal(t, baseTime, o.CreatedAt())
		assert.Equal(t, baseTime, o.UpdatedAt())
		assert.Nil(t, o.WarehouseID())
		assert.Empty(t, o.PendingHistory())
		assert.Zero(t, o.Version())
	})

	t.Run("department cannot create for another department", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), 1, a.requester, kernel.NewUUID(), nil, items, "", baseTime)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("admin creates for any department", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), 1, a.admin, kernel.NewUUID(), &a.warehouse, items, "", baseTime)

		require.NoError(t, err)
	})

	t.Run("drivers and warehouse staff cannot create", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), 1, a.driver, a.department, nil, items, "", baseTime)
		require.ErrorIs(t, err, errs.ErrNotAuthorized)

		_, err = order.NewOrder(kernel.NewUUID(), 1, a.keeper, a.department, nil, items, "", baseTime)
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("items are required", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), 1, a.requester, a.department, nil, nil, "", baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("invalid fields are joined", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, 0, a.admin, kernel.NewUUID(), nil, items, "", time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
		assert.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
	})
}

// Gloves order approved, then a jump to DELIVERED is refused.
func TestOrder_ApproveThenSkipToDelivered(t *testing.T) {
	a := newActors(t)
	o := newPendingOrder(t, a)

	err := o.Transition(a.keeper, order.Approved, order.TransitionOptions{Note: "ok"}, baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, order.Approved, o.Status())
	require.NotNil(t, o.WarehouseID())
	assert.True(t, o.WarehouseID().IsEqual(a.warehouse))

	err = o.Transition(a.driver, order.Delivered, order.TransitionOptions{}, baseTime.Add(2*time.Minute))
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, errs.KindInvalidTransition, errs.KindOf(err))
	assert.Equal(t, order.Approved, o.Status())

	entries := o.PendingHistory()
	require.Len(t, entries, 1)
	assert.Equal(t, history.KindTransition, entries[0].Kind())
	assert.Equal(t, "PENDING", entries[0].FromStatus())
	assert.Equal(t, "APPROVED", entries[0].ToStatus())
	assert.Equal(t, "ok", entries[0].Note())
	assert.True(t, entries[0].ActorID().IsEqual(a.keeper.ID()))
}

func TestOrder_Transition(t *testing.T) {
	a := newActors(t)

	t.Run("role gating", func(t *testing.T) {
		o := newPendingOrder(t, a)

		for _, actor := range []kernel.Actor{a.requester, a.driver, a.admin} {
			err := o.Transition(actor, order.Approved, order.TransitionOptions{}, baseTime)
			require.ErrorIs(t, err, errs.ErrNotAuthorized, actor.Role())
		}
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.PendingHistory())
	})

	t.Run("edge is checked before role", func(t *testing.T) {
		o := newPendingOrder(t, a)

		err := o.Transition(a.driver, order.Ready, order.TransitionOptions{}, baseTime)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("preparing is only reached through commit", func(t *testing.T) {
		o := newApprovedOrder(t, a)

		err := o.Transition(a.keeper, order.Preparing, order.TransitionOptions{}, baseTime)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		require.ErrorContains(t, err, order.ErrPreparationRequired.Error())
	})

	t.Run("reject only from pending", func(t *testing.T) {
		o := newPendingOrder(t, a)
		require.NoError(t, o.Transition(a.keeper, order.Rejected, order.TransitionOptions{Note: "out of budget"}, baseTime))
		assert.Equal(t, order.Rejected, o.Status())
		assert.True(t, o.Status().IsTerminal())

		approved := newApprovedOrder(t, a)
		err := approved.Transition(a.keeper, order.Rejected, order.TransitionOptions{}, baseTime)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("terminal states have no exit", func(t *testing.T) {
		o := newPendingOrder(t, a)
		require.NoError(t, o.Transition(a.keeper, order.Rejected, order.TransitionOptions{}, baseTime))

		for _, target := range order.AllStatuses() {
			err := o.Transition(a.keeper, target, order.TransitionOptions{}, baseTime)
			require.Error(t, err, target)
		}
	})

	t.Run("approval needs a warehouse", func(t *testing.T) {
		unscoped, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, nil)
		require.NoError(t, err)
		o := newPendingOrder(t, a)

		err = o.Transition(unscoped, order.Approved, order.TransitionOptions{}, baseTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Pending, o.Status())

		other := kernel.NewUUID()
		err = o.Transition(unscoped, order.Approved, order.TransitionOptions{WarehouseID: &other}, baseTime)
		require.NoError(t, err)
		assert.True(t, o.WarehouseID().IsEqual(other))
	})

	t.Run("approval outside scope", func(t *testing.T) {
		o := newPendingOrder(t, a)
		other := kernel.NewUUID()

		err := o.Transition(a.keeper, order.Approved, order.TransitionOptions{WarehouseID: &other}, baseTime)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("scoped keeper cannot touch another warehouse's order", func(t *testing.T) {
		o := newApprovedOrder(t, a)
		stranger, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWarehouse, nil, []kernel.UUID{kernel.NewUUID()})
		require.NoError(t, err)

		_, err = o.PreparationWorksheet(stranger)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.False(t, o.IsVisibleTo(stranger))
	})

	t.Run("warehouse is not rerouted after approval", func(t *testing.T) {
		o := newPreparingOrder(t, a)
		other := kernel.NewUUID()

		err := o.Transition(a.keeper, order.Ready, order.TransitionOptions{WarehouseID: &other}, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("full lifecycle", func(t *testing.T) {
		o := newPreparingOrder(t, a)

		require.NoError(t, o.MarkReady(a.keeper, "dock 3", baseTime.Add(3*time.Minute)))
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, "dock 3", o.Notes())

		require.NoError(t, o.Transition(a.driver, order.Delivered, order.TransitionOptions{}, baseTime.Add(4*time.Minute)))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredBy())
		assert.True(t, o.DeliveredBy().IsEqual(a.driver.ID()))
		assert.Equal(t, baseTime.Add(4*time.Minute), o.UpdatedAt())

		kinds := make([]history.Kind, 0)
		statuses := make([]string, 0)
		for _, entry := range o.PendingHistory() {
			kinds = append(kinds, entry.Kind())
			statuses = append(statuses, entry.ToStatus())
		}
		assert.Equal(t, []history.Kind{
			history.KindTransition, history.KindPreparation, history.KindTransition, history.KindTransition,
		}, kinds)
		assert.Equal(t, []string{"APPROVED", "PREPARING", "READY", "DELIVERED"}, statuses)
	})
}

func TestOrder_MarkReady(t *testing.T) {
	a := newActors(t)

	t.Run("requires preparing", func(t *testing.T) {
		o := newApprovedOrder(t, a)

		err := o.MarkReady(a.keeper, "", baseTime)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, errs.KindInvalidState, errs.KindOf(err))
	})

	t.Run("requires warehouse role", func(t *testing.T) {
		o := newPreparingOrder(t, a)

		err := o.MarkReady(a.driver, "", baseTime)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("keeps notes when none are given", func(t *testing.T) {
		o := newPreparingOrder(t, a)
		require.NoError(t, o.UpdateNotes(a.keeper, "fragile", baseTime.Add(3*time.Minute)))

		require.NoError(t, o.MarkReady(a.keeper, "", baseTime.Add(4*time.Minute)))

		assert.Equal(t, "fragile", o.Notes())
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	a := newActors(t)
	items, _, err := order.NewItems([]order.ItemDraft{{Name: "Masks", Quantity: 50}, {Name: "Soap", Quantity: 3}})
	require.NoError(t, err)

	t.Run("while pending", func(t *testing.T) {
		o := newPendingOrder(t, a)

		require.NoError(t, o.ReplaceItems(a.requester, items, baseTime.Add(time.Hour)))

		require.Len(t, o.Items(), 2)
		assert.Equal(t, "Masks", o.Items()[0].Name())
		entries := o.PendingHistory()
		require.Len(t, entries, 1)
		assert.Equal(t, history.KindItemsUpdated, entries[0].Kind())
		assert.Equal(t, entries[0].FromStatus(), entries[0].ToStatus())
	})

	t.Run("frozen once preparing", func(t *testing.T) {
		o := newPreparingOrder(t, a)

		err := o.ReplaceItems(a.keeper, items, baseTime)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("never empty", func(t *testing.T) {
		o := newPendingOrder(t, a)

		err := o.ReplaceItems(a.requester, nil, baseTime)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("drivers cannot edit", func(t *testing.T) {
		o := newApprovedOrder(t, a)

		err := o.ReplaceItems(a.driver, items, baseTime)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestOrder_UpdateNotes(t *testing.T) {
	a := newActors(t)

	o := newPendingOrder(t, a)
	require.NoError(t, o.UpdateNotes(a.requester, " deliver before noon ", baseTime.Add(time.Hour)))
	assert.Equal(t, "deliver before noon", o.Notes())
	assert.Equal(t, history.KindNotesUpdated, o.PendingHistory()[0].Kind())

	require.NoError(t, o.Transition(a.keeper, order.Rejected, order.TransitionOptions{}, baseTime.Add(2*time.Hour)))
	err := o.UpdateNotes(a.requester, "too late", baseTime.Add(3*time.Hour))
	require.ErrorIs(t, err, errs.ErrInvalidState)

	otherDept := kernel.NewUUID()
	outsider, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDepartment, &otherDept, nil)
	require.NoError(t, err)
	pending := newPendingOrder(t, a)
	require.ErrorIs(t, pending.UpdateNotes(outsider, "x", baseTime), errs.ErrNotAuthorized)
}

func TestOrder_IsVisibleTo(t *testing.T) {
	a := newActors(t)
	pending := newPendingOrder(t, a)
	preparing := newPreparingOrder(t, a)

	assert.True(t, pending.IsVisibleTo(a.requester))
	assert.True(t, pending.IsVisibleTo(a.keeper), "unrouted orders are visible for approval")
	assert.False(t, pending.IsVisibleTo(a.driver))
	assert.True(t, pending.IsVisibleTo(a.admin))
	assert.False(t, preparing.IsVisibleTo(a.driver))

	require.NoError(t, preparing.MarkReady(a.keeper, "", baseTime.Add(time.Hour)))
	assert.True(t, preparing.IsVisibleTo(a.driver))
}

func TestOrder_Version(t *testing.T) {
	a := newActors(t)
	o := newPendingOrder(t, a)

	expected := int64(0)
	require.NoError(t, o.CheckVersion(nil))
	require.NoError(t, o.CheckVersion(&expected))

	o.BumpVersion()
	err := o.CheckVersion(&expected)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, errs.KindOf(err).Retryable())

	o.ClearPendingHistory()
	assert.Empty(t, o.PendingHistory())
}

func TestRestoreOrder(t *testing.T) {
	a := newActors(t)
	item, err := order.RestoreItem(kernel.NewUUID(), "Gloves", 4, order.UnitBox, 10, false, "", false)
	require.NoError(t, err)
	driver := a.driver.ID()

	snapshot := order.Snapshot{
		ID:           kernel.NewUUID(),
		Seq:          7,
		DepartmentID: a.department,
		WarehouseID:  &a.warehouse,
		Status:       order.Delivered,
		Items:        []*order.Item{item},
		CreatedAt:    baseTime,
		CreatedBy:    a.requester.ID(),
		UpdatedAt:    baseTime.Add(time.Hour),
		DeliveredBy:  &driver,
		Version:      5,
	}

	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	assert.Equal(t, "ORD-000007", o.Number())
	assert.Equal(t, int64(5), o.Version())
	assert.Equal(t, []int{0}, o.Shortages())

	noWarehouse := snapshot
	noWarehouse.WarehouseID = nil
	_, err = order.RestoreOrder(noWarehouse)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	noDriver := snapshot
	noDriver.DeliveredBy = nil
	_, err = order.RestoreOrder(noDriver)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	badStatus := snapshot
	badStatus.Status = order.Unknown
	_, err = order.RestoreOrder(badStatus)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
