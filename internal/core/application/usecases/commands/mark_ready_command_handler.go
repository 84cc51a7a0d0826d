package commands

import (
	"context"
	"time"

	"supply/internal/core/domain/model/order"
)

// MarkReadyCommandHandler finishes preparation: PREPARING -> READY.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkReadyCommandHandler(uowFactory OrderUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(), func(o *order.Order) error {
		return o.MarkReady(cmd.Actor(), cmd.Notes(), time.Now())
	})
}
