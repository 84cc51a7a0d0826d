package queries

import (
	"errors"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var (
	ErrListCompletedOrdersQueryIsNotConstructed = errors.New(
		"ListCompletedOrdersQuery must be created via NewListCompletedOrdersQuery constructor",
	)
)

// ListCompletedOrdersQuery lists DELIVERED and REJECTED orders visible to an actor.
type ListCompletedOrdersQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListCompletedOrdersQuery(actor kernel.Actor) (ListCompletedOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListCompletedOrdersQuery{}, err
	}

	return ListCompletedOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCompletedOrdersQueryIsNotConstructed)
}

func (q ListCompletedOrdersQuery) Actor() kernel.Actor {
	return q.actor
}
