package history

import (
	"errors"
	"fmt"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Kind tells what produced a history entry.
type Kind string

const (
	KindTransition   Kind = "transition"
	KindPreparation  Kind = "preparation"
	KindItemsUpdated Kind = "items_updated"
	KindNotesUpdated Kind = "notes_updated"
)

func (k Kind) Validate() error {
	switch k {
	case KindTransition, KindPreparation, KindItemsUpdated, KindNotesUpdated:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a history kind", string(k)))
	}
}

// ChangesStatus reports whether entries of this kind always move the order to a new status.
func (k Kind) ChangesStatus() bool {
	return k == KindTransition || k == KindPreparation
}

// Entry is one line of an order's audit trail. For edits that keep the status,
// FromStatus equals ToStatus.
type Entry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	kind       Kind
	fromStatus string
	toStatus   string
	actorID    kernel.UUID
	occurredAt time.Time
	note       string

	guard guard.ConstructorGuard
}

// NewEntry builds a new entry with a fresh identifier.
func NewEntry(
	orderID kernel.UUID,
	kind Kind,
	fromStatus, toStatus string,
	actorID kernel.UUID,
	occurredAt time.Time,
	note string,
) (Entry, error) {
	return RestoreEntry(kernel.NewUUID(), orderID, kind, fromStatus, toStatus, actorID, occurredAt, note)
}

// RestoreEntry rebuilds an entry read from storage.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	fromStatus, toStatus string,
	actorID kernel.UUID,
	occurredAt time.Time,
	note string,
) (Entry, error) {
	var statusErr error
	if toStatus == "" {
		statusErr = errs.NewValueIsRequiredError("toStatus")
	} else if kind.ChangesStatus() && fromStatus == toStatus {
		statusErr = errs.NewValueIsInvalidErrorWithCause("toStatus",
			fmt.Errorf("%s entry must change the status, got %s -> %s", kind, fromStatus, toStatus))
	}

	var timeErr error
	if occurredAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("occurredAt")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kind.Validate(),
		statusErr,
		actorID.Validate(),
		timeErr,
	); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:         id,
		orderID:    orderID,
		kind:       kind,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actorID:    actorID,
		occurredAt: occurredAt,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e Entry) ID() kernel.UUID { return e.id }
func (e Entry) OrderID() kernel.UUID { return e.orderID }
func (e Entry) Kind() Kind { return e.kind }
func (e Entry) FromStatus() string { return e.fromStatus }
func (e Entry) ToStatus() string { return e.toStatus }
func (e Entry) ActorID() kernel.UUID { return e.actorID }
func (e Entry) OccurredAt() time.Time { return e.occurredAt }
func (e Entry) Note() string { return e.note }
