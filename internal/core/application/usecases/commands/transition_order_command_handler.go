package commands

import (
	"context"
	"time"

	"supply/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a status change and its history entry
// in one transaction. A concurrent change to the same order surfaces as a
// ConflictError, or as an InvalidTransitionError when the locked order has
// already moved on.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(), func(o *order.Order) error {
		return o.Transition(cmd.Actor(), cmd.Target(), order.TransitionOptions{
			Note:        cmd.Note(),
			WarehouseID: cmd.WarehouseID(),
		}, time.Now())
	})
}
