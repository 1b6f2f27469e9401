// Package queries contains the read side of the application: requests that
// answer questions about current state without mutating it. Query handlers
// read the database directly instead of going through the aggregates, but
// they enforce the same authorization rules as the write side.
package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery lists the orders still moving through fulfillment,
// scoped to what the acting identity may see:
//
//	customer          - own orders only
//	fulfillment agent - orders assigned to them
//	administrator     - every active order
//
// Active means the commercial status is not terminal (delivered, cancelled,
// returned).
type GetActiveOrdersQuery struct {
	actor auth.ActorContext
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for the given actor.
func NewGetActiveOrdersQuery(actor auth.ActorContext) (GetActiveOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Actor returns the identity the result set is scoped to.
func (q GetActiveOrdersQuery) Actor() auth.ActorContext {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one row of the active-orders listing.
type GetActiveOrdersQueryResponse struct {
	ID               kernel.UUID
	Number           string
	CustomerID       kernel.UUID
	AssignedAgentID  *kernel.UUID
	CommercialStatus string
	LogisticsStatus  string
	TotalCents       int64
	CreatedAt        time.Time
}
