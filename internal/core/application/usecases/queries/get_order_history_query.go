package queries

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the full audit trail of one order, in append
// order. Access follows the same resource-scoped order.view rule as the write
// side: customers see their own orders, agents the ones assigned to them,
// administrators any order.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	actor   auth.ActorContext
	guard   guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a history query for the given order and
// actor.
func NewGetOrderHistoryQuery(orderID kernel.UUID, actor auth.ActorContext) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	if err := actor.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the target order.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the identity requesting the history.
func (q GetOrderHistoryQuery) Actor() auth.ActorContext {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse is one entry of an order's audit trail.
type GetOrderHistoryQueryResponse struct {
	Seq     int
	Label   string
	ActorID kernel.UUID
	At      time.Time
	Note    string
}
