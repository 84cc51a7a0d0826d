package order

import (
	"errors"
	"fmt"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItems or RestoreItem constructor")

// MissingNamePlaceholder replaces the name of an item submitted without one.
const MissingNamePlaceholder = "Unnamed item"

// WarningMissingName flags an item whose name was replaced by MissingNamePlaceholder.
const WarningMissingName = "missing_name"

// ItemDraft is an item as submitted by a caller. Name and ItemName are two
// historical spellings of the same field.
type ItemDraft struct {
	Name     string
	ItemName string
	Quantity int
	Unit     string
	Notes    string
}

// Warning is a non-fatal data quality finding on a submitted item.
type Warning struct {
	Index int
	Code  string
}

// CanonicalName resolves the name aliases: name wins over itemName when both are
// set. When both are blank the placeholder is returned and missing is true.
func CanonicalName(name, itemName string) (canonical string, missing bool) {
	if n := strings.TrimSpace(name); n != "" {
		return n, false
	}
	if n := strings.TrimSpace(itemName); n != "" {
		return n, false
	}
	return MissingNamePlaceholder, true
}

// Item is a line of an order. Quantity is the requested amount until a
// preparation is committed, after which it is the amount the warehouse supplies
// and RequestedQuantity keeps the original request.
type Item struct {
	id                kernel.UUID
	name              string
	quantity          int
	unit              Unit
	requestedQuantity int
	isUnavailable     bool
	notes             string
	missingName       bool

	guard guard.ConstructorGuard
}

// NewItems builds the line items of an order from drafts, preserving their order.
// Every invalid field is reported; items with no name get the placeholder and a warning.
func NewItems(drafts []ItemDraft) ([]*Item, []Warning, error) {
	if len(drafts) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]*Item, 0, len(drafts))
	warnings := make([]Warning, 0)
	var problems []error

	for i, draft := range drafts {
		name, missing := CanonicalName(draft.Name, draft.ItemName)
		if missing {
			warnings = append(warnings, Warning{Index: i, Code: WarningMissingName})
		}

		unit, unitErr := ParseUnit(draft.Unit)
		if unitErr != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].unit", i), unitErr))
		}

		if draft.Quantity <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", draft.Quantity),
			))
		}

		items = append(items, &Item{
			id:                kernel.NewUUID(),
			name:              name,
			quantity:          draft.Quantity,
			unit:              unit,
			requestedQuantity: draft.Quantity,
			notes:             strings.TrimSpace(draft.Notes),
			missingName:       missing,
			guard:             guard.NewConstructorGuard(),
		})
	}

	if err := errors.Join(problems...); err != nil {
		return nil, nil, err
	}

	return items, warnings, nil
}

// RestoreItem rebuilds an item read from storage.
func RestoreItem(
	id kernel.UUID,
	name string,
	quantity int,
	unit Unit,
	requestedQuantity int,
	isUnavailable bool,
	notes string,
	missingName bool,
) (*Item, error) {
	var quantityErr error
	switch {
	case requestedQuantity <= 0:
		quantityErr = errs.NewValueIsOutOfRangeError("requestedQuantity", requestedQuantity, 1, "unbounded")
	case quantity < 0 || quantity > requestedQuantity:
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 0, requestedQuantity)
	case isUnavailable && quantity != 0:
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("unavailable item holds quantity %d", quantity))
	}

	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(id.Validate(), nameErr, unit.Validate(), quantityErr); err != nil {
		return nil, err
	}

	return &Item{
		id:                id,
		name:              name,
		quantity:          quantity,
		unit:              unit,
		requestedQuantity: requestedQuantity,
		isUnavailable:     isUnavailable,
		notes:             notes,
		missingName:       missingName,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

// Quantity is the requested amount before preparation and the supplied amount after.
func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) Unit() Unit {
	return i.unit
}

func (i *Item) RequestedQuantity() int {
	return i.requestedQuantity
}

func (i *Item) IsUnavailable() bool {
	return i.isUnavailable
}

func (i *Item) Notes() string {
	return i.notes
}

// HasMissingName reports whether the name is the placeholder substituted at submission.
func (i *Item) HasMissingName() bool {
	return i.missingName
}

// IsShortage reports a partial fulfillment.
func (i *Item) IsShortage() bool {
	return IsShortage(i.quantity, i.requestedQuantity, i.isUnavailable)
}

// IsShortage reports 0 < available < requested on a line that is not
// unavailable. Read models use it for rows they load without an Item.
func IsShortage(available, requested int, unavailable bool) bool {
	return !unavailable && available > 0 && available < requested
}

func (i *Item) applyPreparation(p PreparedItem) {
	i.quantity = p.availableQuantity
	i.isUnavailable = p.isUnavailable
	if p.notes != "" {
		i.notes = p.notes
	}
}

// MissingNameWarnings lists the items that carry the placeholder name.
func MissingNameWarnings(items []*Item) []Warning {
	warnings := make([]Warning, 0)
	for i, item := range items {
		if item.missingName {
			warnings = append(warnings, Warning{Index: i, Code: WarningMissingName})
		}
	}
	return warnings
}
