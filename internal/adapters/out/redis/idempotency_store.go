// Package redis keeps Idempotency-Key → order id mappings for order creation.
// Every call goes through a circuit breaker so a Redis outage costs one fast
// error instead of a timeout per request.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"
)

const keyPrefix = "supply:idempotency:"

// BreakerSettings tunes the circuit breaker guarding Redis.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerSettings trips after 3 consecutive failures and probes after 30s.
var DefaultBreakerSettings = BreakerSettings{
	ConsecutiveFailures: 3,
	OpenTimeout:         30 * time.Second,
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// IdempotencyStore implements ports.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	ttl     time.Duration
	logger  *slog.Logger
}

func NewIdempotencyStore(
	client *redis.Client,
	ttl time.Duration,
	settings BreakerSettings,
	logger *slog.Logger,
) *IdempotencyStore {
	logger = logger.With("component", "idempotency_store")

	const name = "redis-idempotency"
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(circuit string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(circuit).Set(stateValue(to))
			logger.Warn("circuit breaker state changed",
				"circuit", circuit,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return &IdempotencyStore{
		client:  client,
		breaker: breaker,
		ttl:     ttl,
		logger:  logger,
	}
}

// Lookup returns the order id stored for the actor's key. A missing key is
// not an error.
func (s *IdempotencyStore) Lookup(ctx context.Context, actorID kernel.UUID, key string) (kernel.UUID, bool, error) {
	value, err := s.execute(func() (any, error) {
		v, getErr := s.client.Get(ctx, redisKey(actorID, key)).Result()
		if errors.Is(getErr, redis.Nil) {
			return "", nil
		}
		return v, getErr
	})
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	raw, _ := value.(string)
	if raw == "" {
		return kernel.UUID{}, false, nil
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false, fmt.Errorf("idempotency lookup: stored value %q: %w", raw, err)
	}
	return id, true, nil
}

// Remember stores orderID under the actor's key for the configured TTL. The
// first writer wins; a later Remember for the same key is a no-op.
func (s *IdempotencyStore) Remember(ctx context.Context, actorID kernel.UUID, key string, orderID kernel.UUID) error {
	_, err := s.execute(func() (any, error) {
		return s.client.SetNX(ctx, redisKey(actorID, key), orderID.String(), s.ttl).Result()
	})
	if err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// State reports the breaker state. It is listed under components in /health.
func (s *IdempotencyStore) State() string {
	return s.breaker.State().String()
}

func (s *IdempotencyStore) execute(fn func() (any, error)) (any, error) {
	result, err := s.breaker.Execute(fn)
	if err != nil {
		metrics.CircuitBreakerFailures.WithLabelValues(s.breaker.Name()).Inc()
	}
	return result, err
}

func redisKey(actorID kernel.UUID, key string) string {
	return keyPrefix + actorID.String() + ":" + strings.TrimSpace(key)
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
