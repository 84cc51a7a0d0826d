package commands

import (
	"errors"
	"slices"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrReplaceItemsCommandIsNotConstructed = errors.New(
	"ReplaceItemsCommand must be created via NewReplaceItemsCommand constructor",
)

// ReplaceItemsCommand swaps the whole item list of a PENDING or APPROVED order.
type ReplaceItemsCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	items           []order.ItemDraft
	expectedVersion *int64

	guard guard.ConstructorGuard
}

func NewReplaceItemsCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	items []order.ItemDraft,
	expectedVersion *int64,
) (ReplaceItemsCommand, error) {
	var itemsErr error
	if len(items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}

	if err := errors.Join(
		validateOrderTarget(actor, orderID),
		itemsErr,
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return ReplaceItemsCommand{}, err
	}

	return ReplaceItemsCommand{
		actor:           actor,
		orderID:         orderID,
		items:           slices.Clone(items),
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c ReplaceItemsCommand) Validate() error {
	return c.guard.Validate(ErrReplaceItemsCommandIsNotConstructed)
}

func (c ReplaceItemsCommand) Actor() kernel.Actor { return c.actor }
func (c ReplaceItemsCommand) OrderID() kernel.UUID { return c.orderID }
func (c ReplaceItemsCommand) ExpectedVersion() *int64 { return c.expectedVersion }

func (c ReplaceItemsCommand) Items() []order.ItemDraft {
	return slices.Clone(c.items)
}
