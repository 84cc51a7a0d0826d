package commands

import (
	"errors"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var ErrBeginPreparationCommandIsNotConstructed = errors.New(
	"BeginPreparationCommand must be created via NewBeginPreparationCommand constructor",
)

type BeginPreparationCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBeginPreparationCommand(actor kernel.Actor, orderID kernel.UUID) (BeginPreparationCommand, error) {
	if err := validateOrderTarget(actor, orderID); err != nil {
		return BeginPreparationCommand{}, err
	}

	return BeginPreparationCommand{
		actor:   actor,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BeginPreparationCommand) Validate() error {
	return c.guard.Validate(ErrBeginPreparationCommandIsNotConstructed)
}

func (c BeginPreparationCommand) Actor() kernel.Actor { return c.actor }
func (c BeginPreparationCommand) OrderID() kernel.UUID { return c.orderID }
