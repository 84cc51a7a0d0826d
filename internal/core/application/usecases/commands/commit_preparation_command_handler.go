package commands

import (
	"context"
	"log/slog"
	"time"

	"supply/internal/core/domain/model/order"
	"supply/internal/core/domain/services"
)

// CommitPreparationResult is the order after preparation and the summary of
// what the warehouse could supply.
type CommitPreparationResult struct {
	Order     *order.Order
	Summary   order.PreparationSummary
	Shortages []int
}

// CommitPreparationCommandHandler records prepared quantities, moves the order
// to PREPARING and appends one preparation log per item. The order update, its
// history entry and the item logs commit together or not at all.
type CommitPreparationCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.Reconciler
	logger     *slog.Logger
}

func NewCommitPreparationCommandHandler(
	uowFactory UoWFactory,
	reconciler services.Reconciler,
	logger *slog.Logger,
) CommitPreparationCommandHandler {
	return CommitPreparationCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
		logger:     logger.With("component", "commit_preparation_handler"),
	}
}

func (h *CommitPreparationCommandHandler) Handle(
	ctx context.Context,
	cmd CommitPreparationCommand,
) (CommitPreparationResult, error) {
	if err := cmd.Validate(); err != nil {
		return CommitPreparationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CommitPreparationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CommitPreparationResult{}, err
	}

	if err = o.CheckVersion(cmd.ExpectedVersion()); err != nil {
		return CommitPreparationResult{}, err
	}

	result, err := h.reconciler.CommitPreparation(o, cmd.Actor(), cmd.Inputs(), cmd.Notes(), time.Now())
	if err != nil {
		return CommitPreparationResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return CommitPreparationResult{}, err
	}

	if err = uow.HistoryRepository().AddItemLogs(ctx, result.ItemLogs...); err != nil {
		return CommitPreparationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CommitPreparationResult{}, err
	}

	if len(result.Shortages) > 0 {
		h.logger.InfoContext(ctx, "order prepared with shortages",
			"order", o.Number(), "shortages", len(result.Shortages), "summary", result.Summary.String())
	}

	return CommitPreparationResult{
		Order:     o,
		Summary:   result.Summary,
		Shortages: result.Shortages,
	}, nil
}
