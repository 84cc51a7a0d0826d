// Package pgerr maps PostgreSQL failures onto the domain error taxonomy.
package pgerr

import (
	"errors"

	"supply/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// IsConcurrencyFailure reports whether err is a unique violation, a
// serialization failure or a deadlock: a write that lost to another one.
func IsConcurrencyFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected:
		return true
	default:
		return false
	}
}

// Translate wraps concurrency failures in a ConflictError for the named
// object. Other errors are returned unchanged.
func Translate(err error, paramName string, id any) error {
	if err == nil {
		return nil
	}
	if IsConcurrencyFailure(err) {
		return errs.NewConflictErrorWithCause(paramName, id, err)
	}
	return err
}
