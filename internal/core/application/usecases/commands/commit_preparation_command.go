package commands

import (
	"errors"
	"slices"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrCommitPreparationCommandIsNotConstructed = errors.New(
	"CommitPreparationCommand must be created via NewCommitPreparationCommand constructor",
)

// CommitPreparationCommand carries the warehouse operator's per-item results.
// Inputs are positional and must cover every item of the order.
type CommitPreparationCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	inputs          []order.PreparationInput
	notes           string
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewCommitPreparationCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	inputs []order.PreparationInput,
	notes string,
	expectedVersion *int64,
) (CommitPreparationCommand, error) {
	if err := errors.Join(
		validateOrderTarget(actor, orderID),
		validateInputs(inputs),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return CommitPreparationCommand{}, err
	}

	return CommitPreparationCommand{
		actor:           actor,
		orderID:         orderID,
		inputs:          slices.Clone(inputs),
		notes:           strings.TrimSpace(notes),
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// validateInputs only checks presence. Quantities outside [0, requested] are
// clamped by the worksheet, not rejected.
func validateInputs(inputs []order.PreparationInput) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	return nil
}

func (c CommitPreparationCommand) Validate() error {
	return c.guard.Validate(ErrCommitPreparationCommandIsNotConstructed)
}

func (c CommitPreparationCommand) Actor() kernel.Actor { return c.actor }
func (c CommitPreparationCommand) OrderID() kernel.UUID { return c.orderID }
func (c CommitPreparationCommand) Notes() string { return c.notes }
func (c CommitPreparationCommand) ExpectedVersion() *int64 { return c.expectedVersion }

func (c CommitPreparationCommand) Inputs() []order.PreparationInput {
	return slices.Clone(c.inputs)
}
