// Package ports defines the outbound contracts of the payment service: order
// persistence, the unit of work, the payment session store and notifications.
// These interfaces keep the use cases independent of infrastructure and testable.
package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Status, payment and status history of one order are always written together.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds an exclusive lock on it until the
	// surrounding transaction ends. Concurrent payment attempts on the same order
	// queue behind the lock, so only one of them observes pending_payment.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
