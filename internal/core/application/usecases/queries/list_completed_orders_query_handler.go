package queries

import (
	"cmp"
	"context"
	"slices"

	"supply/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// completedStatuses are queried one by one and merged.
var completedStatuses = []order.Status{order.Delivered, order.Rejected}

// ListCompletedOrdersQueryHandler builds the completed list as a union of
// single-status queries merged on CreatedAt descending. Orders created in the
// same instant keep insertion order.
type ListCompletedOrdersQueryHandler struct {
	reader orderReader
}

func NewListCompletedOrdersQueryHandler(db *gorm.DB) ListCompletedOrdersQueryHandler {
	return ListCompletedOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h ListCompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListCompletedOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	merged := make([]OrderView, 0)
	for _, status := range completedStatuses {
		var p predicates
		applyScope(&p, query.Actor())
		p.add("o.status = ?", status.String())

		views, err := h.reader.list(ctx, &p)
		if err != nil {
			return nil, err
		}
		merged = append(merged, views...)
	}

	slices.SortStableFunc(merged, func(a, b OrderView) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return merged, nil
}
