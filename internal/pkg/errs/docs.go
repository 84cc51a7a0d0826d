// Package errs provides standardized error types for the supply ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateError, InvalidTransitionError: For order lifecycle violations
//   - AuthorizationError: For when an actor's role cannot perform an action
//   - ConflictError: For concurrent modification of the same object
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error onto the taxonomy tag exposed to API callers, and
// Kind.Retryable tells callers whether re-fetching and reapplying may succeed.
package errs
