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

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a department's request for items.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, departmentID, nil, []order.ItemDraft{
//	    {Name: "Gloves", Quantity: 10, Unit: "box"},
//	}, "", r.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor          kernel.Actor
	departmentID   kernel.UUID
	warehouseID    *kernel.UUID
	items          []order.ItemDraft
	notes          string
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request envelope. Item contents are
// validated when the items are built.
func NewCreateOrderCommand(
	actor kernel.Actor,
	departmentID kernel.UUID,
	warehouseID *kernel.UUID,
	items []order.ItemDraft,
	notes string,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes:          strings.TrimSpace(notes),
		idempotencyKey: strings.TrimSpace(idempotencyKey),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setDepartmentID(departmentID),
		cmd.setWarehouseID(warehouseID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

func (c CreateOrderCommand) WarehouseID() *kernel.UUID {
	return c.warehouseID
}

func (c CreateOrderCommand) Items() []order.ItemDraft {
	return slices.Clone(c.items)
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

// IdempotencyKey is empty when the caller did not ask for deduplication.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departmentId", err)
	}
	c.departmentID = id
	return nil
}

func (c *CreateOrderCommand) setWarehouseID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("warehouseId", err)
	}
	wid := *id
	c.warehouseID = &wid
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.ItemDraft) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = slices.Clone(items)
	return nil
}
