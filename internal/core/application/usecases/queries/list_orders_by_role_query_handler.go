package queries

import (
	"context"

	"supply/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// ListOrdersByRoleQueryHandler enforces role scoping in SQL: departments
// see their own orders, scoped warehouse staff see orders routed to their
// warehouses plus unrouted ones, drivers see READY and DELIVERED orders,
// admins see everything and are served by ListOrdersQueryHandler. The filter
// is applied on top of the scope.
//
// Example:
//
//	query, err := NewListOrdersByRoleQuery(actor, NewOrderFilter("pending", "", "", "", "", ""))
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersByRoleQueryHandler struct {
	reader orderReader
	all    ListOrdersQueryHandler
}

func NewListOrdersByRoleQueryHandler(db *gorm.DB) ListOrdersByRoleQueryHandler {
	return ListOrdersByRoleQueryHandler{
		reader: orderReader{db: db},
		all:    NewListOrdersQueryHandler(db),
	}
}

func (h ListOrdersByRoleQueryHandler) Handle(ctx context.Context, query ListOrdersByRoleQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Actor().Role() == kernel.RoleAdmin {
		return h.all.Handle(ctx, NewListOrdersQuery(query.Filter()))
	}

	var p predicates
	applyScope(&p, query.Actor())
	query.Filter().apply(&p)
	return h.reader.list(ctx, &p)
}
