package errs

import "errors"

// Kind is the stable taxonomy tag surfaced to callers. Callers branch on the
// tag, never on message text.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindInvalidState      Kind = "InvalidStateError"
	KindInvalidTransition Kind = "InvalidTransitionError"
	KindAuthorization     Kind = "AuthorizationError"
	KindNotFound          Kind = "NotFoundError"
	KindConflict          Kind = "ConflictError"
	KindStorage           Kind = "StorageError"
)

// KindOf classifies err. Anything outside the domain taxonomy is reported as
// a storage failure. KindOf(nil) returns the empty Kind.
//
// Authorization is tested first: an AuthorizationError keeps its kind even
// when its cause is a validation error.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return KindAuthorization
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindStorage
	}
}

// Retryable reports whether re-fetching and reapplying the same call may succeed.
func (k Kind) Retryable() bool {
	return k == KindConflict || k == KindStorage
}
