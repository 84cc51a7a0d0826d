package order

import (
	"fmt"
	"slices"
	"strings"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions (role in parentheses):
//
//	PENDING ──┬──> APPROVED ──> PREPARING ──> READY ──> DELIVERED
//	          │   (warehouse)   (warehouse)  (warehouse)  (driver)
//	          └──> REJECTED
//	              (warehouse)
//
// DELIVERED and REJECTED are terminal. No status is ever revisited.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Approved
	Preparing
	Ready
	Delivered
	Rejected
)

var statusNames = map[Status]string{
	Unknown:   "UNKNOWN",
	Pending:   "PENDING",
	Approved:  "APPROVED",
	Preparing: "PREPARING",
	Ready:     "READY",
	Delivered: "DELIVERED",
	Rejected:  "REJECTED",
}

// lifecycle lists every legal edge and the role allowed to take it.
var lifecycle = map[Status]map[Status]kernel.Role{
	Pending: {
		Approved: kernel.RoleWarehouse,
		Rejected: kernel.RoleWarehouse,
	},
	Approved: {
		Preparing: kernel.RoleWarehouse,
	},
	Preparing: {
		Ready: kernel.RoleWarehouse,
	},
	Ready: {
		Delivered: kernel.RoleDriver,
	},
}

// AllStatuses returns the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Approved, Preparing, Ready, Delivered, Rejected}
}

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, candidate := range statusNames {
		if status != Unknown && candidate == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no edge leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Rejected
}

// CanTransitionTo reports whether s -> target is an edge of the lifecycle.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := lifecycle[s][target]
	return ok
}

// Transitions returns the statuses reachable from s in one step.
func (s Status) Transitions() []Status {
	next := make([]Status, 0, len(lifecycle[s]))
	for target := range lifecycle[s] {
		next = append(next, target)
	}
	slices.Sort(next)
	return next
}

// RequiredRole returns the role permitted to take the edge s -> target,
// or an InvalidTransitionError when the edge does not exist.
func (s Status) RequiredRole(target Status) (kernel.Role, error) {
	role, ok := lifecycle[s][target]
	if !ok {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return role, nil
}

// AllowsItemChanges reports whether line items may still be edited.
func (s Status) AllowsItemChanges() bool {
	return s == Pending || s == Approved
}

// AllowsNotesChanges reports whether the order notes may still be edited.
func (s Status) AllowsNotesChanges() bool {
	return s.Validate() == nil && !s.IsTerminal()
}
