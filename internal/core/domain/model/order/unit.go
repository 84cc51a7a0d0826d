package order

import (
	"fmt"
	"strings"

	"supply/internal/pkg/errs"
)

// Unit is the unit of measure of a requested quantity.
type Unit string

const (
	UnitPiece  Unit = "piece"
	UnitBox    Unit = "box"
	UnitCarton Unit = "carton"
	UnitKg     Unit = "kg"
	UnitLiter  Unit = "liter"
)

// DefaultUnit is used when an item is submitted without a unit.
const DefaultUnit = UnitPiece

// ParseUnit parses a unit name case-insensitively. An empty name yields DefaultUnit.
func ParseUnit(s string) (Unit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultUnit, nil
	}
	unit := Unit(name)
	if err := unit.Validate(); err != nil {
		return "", err
	}
	return unit, nil
}

func (u Unit) Validate() error {
	switch u {
	case UnitPiece, UnitBox, UnitCarton, UnitKg, UnitLiter:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not a supported unit", string(u)))
	}
}

func (u Unit) String() string {
	return string(u)
}
