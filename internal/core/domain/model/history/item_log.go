package history

import (
	"errors"
	"fmt"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrItemLogIsNotConstructed = errors.New("ItemLog must be created via NewItemLog or RestoreItemLog constructor")

// ItemLogRecord carries the fields of a per-item preparation record.
type ItemLogRecord struct {
	OrderID           kernel.UUID
	OrderNumber       string
	ItemID            kernel.UUID
	ItemName          string
	Unit              string
	RequestedQuantity int
	AvailableQuantity int
	IsUnavailable     bool
	Notes             string
	ActorID           kernel.UUID
	WarehouseID       kernel.UUID
	PreparedAt        time.Time
}

// ItemLog records what a warehouse could supply for one requested item when a
// preparation was committed.
type ItemLog struct {
	id     kernel.UUID
	record ItemLogRecord

	guard guard.ConstructorGuard
}

func NewItemLog(record ItemLogRecord) (ItemLog, error) {
	return RestoreItemLog(kernel.NewUUID(), record)
}

func RestoreItemLog(id kernel.UUID, record ItemLogRecord) (ItemLog, error) {
	var quantityErr error
	switch {
	case record.RequestedQuantity <= 0:
		quantityErr = errs.NewValueIsOutOfRangeError("requestedQuantity", record.RequestedQuantity, 1, "unbounded")
	case record.AvailableQuantity < 0 || record.AvailableQuantity > record.RequestedQuantity:
		quantityErr = errs.NewValueIsOutOfRangeError("availableQuantity",
			record.AvailableQuantity, 0, record.RequestedQuantity)
	case record.IsUnavailable && record.AvailableQuantity != 0:
		quantityErr = errs.NewValueIsInvalidErrorWithCause("availableQuantity",
			fmt.Errorf("unavailable item reports %d available", record.AvailableQuantity))
	}

	var timeErr error
	if record.PreparedAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("preparedAt")
	}

	if err := errors.Join(
		id.Validate(),
		record.OrderID.Validate(),
		record.ItemID.Validate(),
		record.ActorID.Validate(),
		record.WarehouseID.Validate(),
		quantityErr,
		timeErr,
	); err != nil {
		return ItemLog{}, err
	}

	if record.AvailableQuantity == 0 {
		record.IsUnavailable = true
	}

	return ItemLog{id: id, record: record, guard: guard.NewConstructorGuard()}, nil
}

func (l ItemLog) Validate() error {
	return l.guard.Validate(ErrItemLogIsNotConstructed)
}

func (l ItemLog) ID() kernel.UUID {
	return l.id
}

// Record returns a copy of the logged fields.
func (l ItemLog) Record() ItemLogRecord {
	return l.record
}

// IsShortage reports a partial fulfillment: something, but less than requested.
func (l ItemLog) IsShortage() bool {
	return !l.record.IsUnavailable &&
		l.record.AvailableQuantity > 0 &&
		l.record.AvailableQuantity < l.record.RequestedQuantity
}

// MissingQuantity is the part of the request the warehouse could not supply.
func (l ItemLog) MissingQuantity() int {
	return l.record.RequestedQuantity - l.record.AvailableQuantity
}
