package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/core/ports"
	"supply/internal/pkg/errs"
)

// CreateOrderResult is the created (or replayed) order with its item warnings.
type CreateOrderResult struct {
	Order    *order.Order
	Warnings []order.Warning
	// Replayed is true when the idempotency key matched an earlier create.
	Replayed bool
}

// CreateOrderCommandHandler creates PENDING orders. When the command carries an
// idempotency key already seen, the stored order is returned instead.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	idempotency ports.IdempotencyStore
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates the handler. idempotency may be nil to
// disable deduplication.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	idempotency ports.IdempotencyStore,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		logger:      logger.With("component", "create_order_handler"),
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if replayed, ok, err := h.replay(ctx, cmd); err != nil || ok {
		return replayed, err
	}

	items, warnings, err := order.NewItems(cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	seq, err := orderRepo.NextSeq(ctx)
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		seq,
		cmd.Actor(),
		cmd.DepartmentID(),
		cmd.WarehouseID(),
		items,
		cmd.Notes(),
		time.Now(),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.remember(ctx, cmd.Actor(), cmd.IdempotencyKey(), o)

	return CreateOrderResult{Order: o, Warnings: warnings}, nil
}

func (h *CreateOrderCommandHandler) replay(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, bool, error) {
	if h.idempotency == nil || cmd.IdempotencyKey() == "" {
		return CreateOrderResult{}, false, nil
	}

	orderID, found, err := h.idempotency.Lookup(ctx, cmd.Actor().ID(), cmd.IdempotencyKey())
	if err != nil {
		h.logger.WarnContext(ctx, "idempotency lookup failed, creating anyway",
			"key", cmd.IdempotencyKey(), "error", err)
		return CreateOrderResult{}, false, nil
	}
	if !found {
		return CreateOrderResult{}, false, nil
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return CreateOrderResult{}, false, err
	}

	// A key only replays an order of the same department the caller can see.
	if !o.IsVisibleTo(cmd.Actor()) || !o.DepartmentID().IsEqual(cmd.DepartmentID()) {
		return CreateOrderResult{}, false, errs.NewConflictErrorWithCause("Idempotency-Key", cmd.IdempotencyKey(),
			errors.New("key was already used for another order"))
	}

	return CreateOrderResult{Order: o, Warnings: order.MissingNameWarnings(o.Items()), Replayed: true}, true, nil
}

func (h *CreateOrderCommandHandler) remember(ctx context.Context, actor kernel.Actor, key string, o *order.Order) {
	if h.idempotency == nil || key == "" {
		return
	}
	if err := h.idempotency.Remember(ctx, actor.ID(), key, o.ID()); err != nil {
		h.logger.WarnContext(ctx, "idempotency key not stored",
			"key", key, "order", o.Number(), "error", err)
	}
}
