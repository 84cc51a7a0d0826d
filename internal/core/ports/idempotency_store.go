package ports

import (
	"context"

	"supply/internal/core/domain/model/kernel"
)

// IdempotencyStore remembers which order an Idempotency-Key produced. Keys are
// namespaced by the actor that sent them; two actors never share a key.
type IdempotencyStore interface {
	// Lookup returns the order stored for the actor's key and whether one was found.
	Lookup(ctx context.Context, actorID kernel.UUID, key string) (kernel.UUID, bool, error)

	// Remember stores the order created for the actor's key.
	Remember(ctx context.Context, actorID kernel.UUID, key string, orderID kernel.UUID) error
}
