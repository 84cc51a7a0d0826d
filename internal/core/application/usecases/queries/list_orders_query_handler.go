package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler applies an OrderFilter to the orders table.
// Results are ordered newest first with insertion order breaking ties, so
// repeated calls on an unchanged store return identical lists.
type ListOrdersQueryHandler struct {
	reader orderReader
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{reader: orderReader{db: db}}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var p predicates
	query.Filter().apply(&p)
	return h.reader.list(ctx, &p)
}
