package queries

import (
	"context"

	"supply/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler returns one order with its items. Orders outside the
// actor's scope are reported as not found, the same as unknown ids.
type GetOrderQueryHandler struct {
	reader orderReader
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: orderReader{db: db}}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := h.reader.list(ctx, scopedOrderPredicates(query.Actor(), query.OrderID()))
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	return views[0], nil
}
