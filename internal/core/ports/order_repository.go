package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under optimistic
	// concurrency: the write only succeeds when the stored version still
	// matches the version the aggregate was loaded with, and increments it.
	// A stale aggregate fails with errs.VersionConflictError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its line items and history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountCreatedOn returns how many orders were created on the given
	// calendar day (UTC). Used to derive the next daily order-number
	// sequence; must run inside the same transaction as the subsequent Add.
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)

	// GetFirstUnassigned retrieves the oldest open (non-terminal) order that
	// has no fulfillment agent assigned yet. Used by the assignment job.
	GetFirstUnassigned(ctx context.Context) (*order.Order, error)
}
