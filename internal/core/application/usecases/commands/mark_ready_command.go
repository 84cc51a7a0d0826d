package commands

import (
	"errors"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	notes           string
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewMarkReadyCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	notes string,
	expectedVersion *int64,
) (MarkReadyCommand, error) {
	if err := errors.Join(
		validateOrderTarget(actor, orderID),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		actor:           actor,
		orderID:         orderID,
		notes:           strings.TrimSpace(notes),
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

func (c MarkReadyCommand) Actor() kernel.Actor { return c.actor }
func (c MarkReadyCommand) OrderID() kernel.UUID { return c.orderID }
func (c MarkReadyCommand) Notes() string { return c.notes }
func (c MarkReadyCommand) ExpectedVersion() *int64 { return c.expectedVersion }
