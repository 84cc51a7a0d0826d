// Package guard provides ConstructorGuard, a marker that lets value objects,
// entities, commands and queries tell a constructed instance from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through their
// constructor. The zero value fails validation.
//
// Example:
//
//	type ListOrdersQuery struct {
//	    filter Filter
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewListOrdersQuery(filter Filter) ListOrdersQuery {
//	    return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}
//	}
//
//	func (q ListOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
