package redis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	supplyredis "supply/internal/adapters/out/redis"
	"supply/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_BreakerOpensOnOutage(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := supplyredis.NewIdempotencyStore(client, time.Hour, supplyredis.BreakerSettings{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	for range 2 {
		_, found, err := store.Lookup(ctx, kernel.NewUUID(), "key-1")
		require.Error(t, err)
		assert.False(t, found)
	}
	assert.Equal(t, gobreaker.StateOpen.String(), store.State())

	err := store.Remember(ctx, kernel.NewUUID(), "key-1", kernel.NewUUID())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestConnect_RejectsBadURL(t *testing.T) {
	_, err := supplyredis.Connect(context.Background(), "http://not-redis")
	require.Error(t, err)
}
