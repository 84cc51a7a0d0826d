package commands

import (
	"context"
	"time"

	"supply/internal/core/domain/model/order"
)

// ReplaceItemsResult is the updated order and the warnings raised while
// normalizing the new items.
type ReplaceItemsResult struct {
	Order    *order.Order
	Warnings []order.Warning
}

type ReplaceItemsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewReplaceItemsCommandHandler(uowFactory OrderUoWFactory) ReplaceItemsCommandHandler {
	return ReplaceItemsCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ReplaceItemsCommandHandler) Handle(ctx context.Context, cmd ReplaceItemsCommand) (ReplaceItemsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReplaceItemsResult{}, err
	}

	items, warnings, err := order.NewItems(cmd.Items())
	if err != nil {
		return ReplaceItemsResult{}, err
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), cmd.ExpectedVersion(), func(o *order.Order) error {
		return o.ReplaceItems(cmd.Actor(), items, time.Now())
	})
	if err != nil {
		return ReplaceItemsResult{}, err
	}

	return ReplaceItemsResult{Order: o, Warnings: warnings}, nil
}
