package commands

import (
	"context"
	"time"

	"supply/internal/core/domain/model/order"
)

type UpdateNotesCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateNotesCommandHandler(uowFactory OrderUoWFactory) UpdateNotesCommandHandler {
	return UpdateNotesCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateNotesCommandHandler) Handle(ctx context.Context, cmd UpdateNotesCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(), func(o *order.Order) error {
		return o.UpdateNotes(cmd.Actor(), cmd.Notes(), time.Now())
	})
}
