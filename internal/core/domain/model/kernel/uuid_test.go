package kernel_test

import (
	"testing"

	"supply/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"canonical", orderUUID, false},
		{"braced", "{" + orderUUID + "}", false},
		{"urn", "urn:uuid:" + orderUUID, false},
		{"no hyphens", "550e8400e29b41d4a716446655440000", false},
		{"empty", "", true},
		{"truncated", "550e8400-e29b-41d4-a716", true},
		{"trailing garbage", orderUUID + "-extra", true},
		{"non hex", "zzze8400-e29b-41d4-a716-446655440000", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tc.input)
			if tc.wantErr {
				require.ErrorContains(t, err, "invalid UUID format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, orderUUID, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("valid bytes", func(t *testing.T) {
		src, _ := kernel.UUIDFromString(orderUUID)
		raw := src.Bytes()

		id, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(src))
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	parsedNil, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, parsedNil.Validate())
	assert.True(t, zero.IsEqual(parsedNil))
}

func TestUUID_BytesDoesNotLeakState(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}

func TestUUIDsFromStrings(t *testing.T) {
	t.Run("parses and skips empty elements", func(t *testing.T) {
		ids, err := kernel.UUIDsFromStrings([]string{"550e8400-e29b-41d4-a716-446655440000", "", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"})

		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", ids[1].String())
	})

	t.Run("fails on a malformed element", func(t *testing.T) {
		_, err := kernel.UUIDsFromStrings([]string{"550e8400-e29b-41d4-a716-446655440000", "warehouse-1"})

		assert.ErrorContains(t, err, "invalid UUID format")
	})
}

func TestContainsUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	assert.True(t, kernel.ContainsUUID([]kernel.UUID{a, b}, b))
	assert.False(t, kernel.ContainsUUID([]kernel.UUID{a}, b))
	assert.False(t, kernel.ContainsUUID(nil, a))
}
