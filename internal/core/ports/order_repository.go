// Package ports defines the contracts between the supply ordering domain and
// its infrastructure adapters.
package ports

import (
	"context"

	"supply/internal/core/domain/model/kernel"
	"supply/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Add and Update also persist the order's pending history entries in the same
// transaction, then clear them.
type OrderRepository interface {
	// NextSeq reserves the next order sequence value.
	NextSeq(ctx context.Context) (int64, error)

	// Add persists a new order with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. It fails with a
	// ConflictError when the stored version differs from the aggregate's.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
