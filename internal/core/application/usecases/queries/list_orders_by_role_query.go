package queries

import (
	"errors"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var (
	ErrListOrdersByRoleQueryIsNotConstructed = errors.New(
		"ListOrdersByRoleQuery must be created via NewListOrdersByRoleQuery constructor",
	)
)

// ListOrdersByRoleQuery lists the orders an actor may see, narrowed by an
// optional filter.
type ListOrdersByRoleQuery struct {
	actor  kernel.Actor
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewListOrdersByRoleQuery(actor kernel.Actor, filter OrderFilter) (ListOrdersByRoleQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersByRoleQuery{}, err
	}

	return ListOrdersByRoleQuery{
		actor:  actor,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersByRoleQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByRoleQueryIsNotConstructed)
}

func (q ListOrdersByRoleQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersByRoleQuery) Filter() OrderFilter {
	return q.filter
}
