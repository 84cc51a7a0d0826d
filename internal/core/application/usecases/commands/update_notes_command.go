package commands

import (
	"errors"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/guard"
)

var ErrUpdateNotesCommandIsNotConstructed = errors.New(
	"UpdateNotesCommand must be created via NewUpdateNotesCommand constructor",
)

// UpdateNotesCommand replaces the free-text notes of an order. Empty notes
// clear them.
type UpdateNotesCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	notes           string
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewUpdateNotesCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	notes string,
	expectedVersion *int64,
) (UpdateNotesCommand, error) {
	if err := errors.Join(
		validateOrderTarget(actor, orderID),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return UpdateNotesCommand{}, err
	}

	return UpdateNotesCommand{
		actor:           actor,
		orderID:         orderID,
		notes:           strings.TrimSpace(notes),
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateNotesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateNotesCommandIsNotConstructed)
}

func (c UpdateNotesCommand) Actor() kernel.Actor { return c.actor }
func (c UpdateNotesCommand) OrderID() kernel.UUID { return c.orderID }
func (c UpdateNotesCommand) Notes() string { return c.notes }
func (c UpdateNotesCommand) ExpectedVersion() *int64 { return c.expectedVersion }
