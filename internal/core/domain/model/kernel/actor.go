package kernel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"supply/internal/pkg/errs"
	"supply/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the closed set of caller roles.
type Role string

const (
	RoleDepartment Role = "department"
	RoleWarehouse  Role = "warehouse"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleDepartment, RoleWarehouse, RoleDriver, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller on whose behalf an operation runs.
// Department actors are bound to one department. Warehouse actors may carry
// a warehouse scope; an empty scope means every warehouse.
type Actor struct {
	id           UUID
	role         Role
	departmentID *UUID
	warehouseIDs []UUID

	guard guard.ConstructorGuard
}

func NewActor(id UUID, role Role, departmentID *UUID, warehouseIDs []UUID) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.setID(id),
		actor.setRole(role),
		actor.setDepartment(role, departmentID),
		actor.setWarehouses(warehouseIDs),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// DepartmentID returns the actor's department, or nil when none is set.
func (a Actor) DepartmentID() *UUID {
	if a.departmentID == nil {
		return nil
	}
	id := *a.departmentID
	return &id
}

// WarehouseIDs returns a copy of the actor's warehouse scope.
func (a Actor) WarehouseIDs() []UUID {
	return slices.Clone(a.warehouseIDs)
}

// Is reports whether the actor has the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// HasWarehouseScope reports whether the actor is restricted to specific warehouses.
func (a Actor) HasWarehouseScope() bool {
	return len(a.warehouseIDs) > 0
}

// CanAccessWarehouse reports whether the actor's warehouse scope admits id.
func (a Actor) CanAccessWarehouse(id UUID) bool {
	return !a.HasWarehouseScope() || ContainsUUID(a.warehouseIDs, id)
}

// SingleWarehouse returns the only warehouse in the actor's scope, or nil.
func (a Actor) SingleWarehouse() *UUID {
	if len(a.warehouseIDs) != 1 {
		return nil
	}
	id := a.warehouseIDs[0]
	return &id
}

// BelongsToDepartment reports whether the actor's department is id.
func (a Actor) BelongsToDepartment(id UUID) bool {
	return a.departmentID != nil && a.departmentID.IsEqual(id)
}

func (a *Actor) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Actor) setDepartment(role Role, departmentID *UUID) error {
	if departmentID == nil {
		if role == RoleDepartment {
			return errs.NewValueIsRequiredError("departmentId")
		}
		return nil
	}
	if err := departmentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("departmentId", err)
	}
	id := *departmentID
	a.departmentID = &id
	return nil
}

func (a *Actor) setWarehouses(warehouseIDs []UUID) error {
	for _, id := range warehouseIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("warehouseIds", err)
		}
		if !ContainsUUID(a.warehouseIDs, id) {
			a.warehouseIDs = append(a.warehouseIDs, id)
		}
	}
	return nil
}
