package commands

import (
	"context"

	"supply/internal/core/domain/model/order"
	"supply/internal/core/domain/services"
)

// BeginPreparationResult is a worksheet seeded with full availability, plus
// the order it was built from. Version is what CommitPreparation should send
// back as the expected version.
type BeginPreparationResult struct {
	Order     *order.Order
	Worksheet order.PreparedItems
	Version   int64
}

// BeginPreparationCommandHandler builds a preparation worksheet. It writes
// nothing; the transaction is always rolled back.
type BeginPreparationCommandHandler struct {
	uowFactory OrderUoWFactory
	reconciler services.Reconciler
}

func NewBeginPreparationCommandHandler(
	uowFactory OrderUoWFactory,
	reconciler services.Reconciler,
) BeginPreparationCommandHandler {
	return BeginPreparationCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
	}
}

func (h *BeginPreparationCommandHandler) Handle(
	ctx context.Context,
	cmd BeginPreparationCommand,
) (BeginPreparationResult, error) {
	if err := cmd.Validate(); err != nil {
		return BeginPreparationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BeginPreparationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return BeginPreparationResult{}, err
	}

	worksheet, err := h.reconciler.BeginPreparation(o, cmd.Actor())
	if err != nil {
		return BeginPreparationResult{}, err
	}

	return BeginPreparationResult{
		Order:     o,
		Worksheet: worksheet,
		Version:   o.Version(),
	}, nil
}
