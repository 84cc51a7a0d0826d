package queries

import (
	"errors"
	"time"

	"supply/internal/core/domain/model/history"
	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery reads the audit trail of one order.
type GetOrderHistoryQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := errors.Join(actor.Validate(), validateOrderID(orderID)); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// HistoryEntryView is one line of an order's audit trail.
type HistoryEntryView struct {
	ID         kernel.UUID
	Kind       history.Kind
	FromStatus string
	ToStatus   string
	ActorID    kernel.UUID
	OccurredAt time.Time
	Note       string
}
