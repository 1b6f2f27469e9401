package queries

import (
	"context"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders straight from the database,
// applying the actor's visibility scope in SQL. The capability check itself
// runs against the resource-less order.view permission; row scoping then
// narrows what the actor gets back, so a deny-by-scope is an empty result,
// not an error.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order listings.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by creation time, oldest
// first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	decision, err := services.NewAuthorizer().Authorize(actor, auth.CapabilityOrderView, nil)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, errs.NewAccessDeniedError(string(decision.Reason()))
	}

	scopeClause, scopeArg := visibilityScope(actor)

	sql := `
		SELECT
			o.id,
			o.number,
			o.customer_id,
			o.assigned_agent_id,
			o.commercial_status,
			o.logistics_status,
			COALESCE(SUM(i.quantity * i.unit_price_cents), 0) AS total_cents,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.commercial_status NOT IN ('delivered', 'cancelled', 'returned')
	` + scopeClause + `
		GROUP BY o.id
		ORDER BY o.created_at, o.id
	`

	var args []any
	if scopeArg != nil {
		args = append(args, scopeArg)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			customerID uuid.UUID
			agentID    *uuid.UUID
			resp       GetActiveOrdersQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.Number,
			&customerID,
			&agentID,
			&resp.CommercialStatus,
			&resp.LogisticsStatus,
			&resp.TotalCents,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}
		if agentID != nil {
			assigned, idErr := kernel.UUIDFromBytes((*agentID)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.AssignedAgentID = &assigned
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// visibilityScope maps the actor's role to the SQL predicate restricting
// which orders they see. Administrators get no predicate.
func visibilityScope(actor auth.ActorContext) (string, any) {
	switch actor.Role() {
	case auth.RoleCustomer:
		return " AND o.customer_id = ?", actor.Identity().Bytes()
	case auth.RoleFulfillmentAgent:
		return " AND o.assigned_agent_id = ?", actor.Identity().Bytes()
	default:
		return "", nil
	}
}
