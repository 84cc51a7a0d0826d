package commands

import (
	"context"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"
)

// mutateOrder loads the order under a row lock, checks the expected version,
// applies change and saves the order together with its queued history entries.
// Nothing is written when any step fails.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	expectedVersion *int64,
	change func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = o.CheckVersion(expectedVersion); err != nil {
		return nil, err
	}

	if err = change(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func validateOrderTarget(actor kernel.Actor, orderID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	return nil
}

func validateExpectedVersion(expectedVersion *int64) error {
	if expectedVersion != nil && *expectedVersion < 0 {
		return errs.NewValueIsOutOfRangeError("expectedVersion", *expectedVersion, 0, "unbounded")
	}
	return nil
}

func copyVersion(expectedVersion *int64) *int64 {
	if expectedVersion == nil {
		return nil
	}
	v := *expectedVersion
	return &v
}
