package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrConflict          = errors.New("conflict")
)

// InvalidStateError is returned when an operation is attempted from a status
// that does not permit it.
type InvalidStateError struct {
	Operation string
	State     string
	Cause     error
}

func NewInvalidStateError(operation, state string) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		State:     state,
	}
}

func NewInvalidStateErrorWithCause(operation, state string, cause error) *InvalidStateError {
	return &InvalidStateError{
		Operation: operation,
		State:     state,
		Cause:     cause,
	}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s while %s", ErrInvalidState, e.Operation, e.State)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Is matches the cause as well, so callers can test for domain sentinels
// carried inside the error.
func (e *InvalidStateError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// InvalidTransitionError is returned when a requested status change is not an
// edge of the lifecycle graph.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{
		From: from,
		To:   to,
	}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:  from,
		To:    to,
		Cause: cause,
	}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func (e *InvalidTransitionError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// AuthorizationError is returned when an actor's role cannot perform an action.
type AuthorizationError struct {
	Role   string
	Action string
	Cause  error
}

func NewAuthorizationError(role, action string) *AuthorizationError {
	return &AuthorizationError{
		Role:   role,
		Action: action,
	}
}

func NewAuthorizationErrorWithCause(role, action string, cause error) *AuthorizationError {
	return &AuthorizationError{
		Role:   role,
		Action: action,
		Cause:  cause,
	}
}

func (e *AuthorizationError) Error() string {
	msg := fmt.Sprintf("%s: role %s cannot %s", ErrNotAuthorized, e.Role, e.Action)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

func (e *AuthorizationError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}

// ConflictError is returned when a concurrent modification is detected.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %v was modified concurrently", ErrConflict, e.ParamName, e.ID)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func (e *ConflictError) Is(target error) bool {
	return e.Cause != nil && errors.Is(e.Cause, target)
}
