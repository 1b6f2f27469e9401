package ports

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// OrderEventPublisher emits integration events after an order's state
// changed and the change was committed. Publishing is best-effort
// notification, not part of the transaction: a failed publish must never
// roll back a committed state change.
type OrderEventPublisher interface {
	// PublishOrderChanged emits the order's current state to downstream
	// consumers (notifications, analytics).
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error

	// Close flushes buffered events and releases the underlying producer.
	Close()
}
