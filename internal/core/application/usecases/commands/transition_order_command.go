package commands

import (
	"errors"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order along one lifecycle edge.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	actor           kernel.Actor
	orderID         kernel.UUID
	target          order.Status
	note            string
	warehouseID     *kernel.UUID
	expectedVersion *int64

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand builds a transition request. warehouseID routes the
// order on approval; expectedVersion enables optimistic concurrency.
func NewTransitionOrderCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	target order.Status,
	note string,
	warehouseID *kernel.UUID,
	expectedVersion *int64,
) (TransitionOrderCommand, error) {
	var targetErr error
	if err := target.Validate(); err != nil {
		targetErr = errs.NewValueIsInvalidErrorWithCause("targetStatus", err)
	}

	var warehouseErr error
	if warehouseID != nil {
		warehouseErr = warehouseID.Validate()
	}

	if err := errors.Join(
		validateOrderTarget(actor, orderID),
		targetErr,
		warehouseErr,
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd := TransitionOrderCommand{
		actor:           actor,
		orderID:         orderID,
		target:          target,
		note:            strings.TrimSpace(note),
		expectedVersion: copyVersion(expectedVersion),
		guard:           guard.NewConstructorGuard(),
	}
	if warehouseID != nil {
		wid := *warehouseID
		cmd.warehouseID = &wid
	}
	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() kernel.Actor { return c.actor }
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) Target() order.Status { return c.target }
func (c TransitionOrderCommand) Note() string { return c.note }
func (c TransitionOrderCommand) WarehouseID() *kernel.UUID { return c.warehouseID }
func (c TransitionOrderCommand) ExpectedVersion() *int64 { return c.expectedVersion }
