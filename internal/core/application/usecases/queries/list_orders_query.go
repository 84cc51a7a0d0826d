package queries

import (
	"errors"

	"supply/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists every order matching a filter, with no role scope.
// It serves admin listings behind ListOrdersByRoleQueryHandler; other
// actor-facing reads are scoped there.
//
// Example:
//
//	filter := NewOrderFilter("approved", "", warehouseID, "", "2024-05-01", "")
//	orders, err := handler.Handle(ctx, NewListOrdersQuery(filter))
//	if err != nil {
//	    return err
//	}
type ListOrdersQuery struct {
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) ListOrdersQuery {
	return ListOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}
