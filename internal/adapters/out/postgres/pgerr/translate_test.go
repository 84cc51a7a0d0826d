package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"supply/internal/adapters/out/postgres/pgerr"
	"supply/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		conflict bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"plain", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := pgerr.Translate(tc.err, "order", "ORD-000001")

			assert.Equal(t, tc.conflict, pgerr.IsConcurrencyFailure(tc.err))
			if tc.conflict {
				require.ErrorIs(t, err, errs.ErrConflict)
				return
			}
			assert.Same(t, tc.err, err)
		})
	}

	assert.NoError(t, pgerr.Translate(nil, "order", "x"))
}
