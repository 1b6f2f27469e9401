package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's audit trail from the database.
// The ownership/assignment columns are fetched first so the resource-scoped
// authorization check runs before any history row leaves the store.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for order history queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. Entries come back ordered by sequence, the
// genesis entry first.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ref, err := h.loadAccessRef(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	decision, err := services.NewAuthorizer().Authorize(query.Actor(), auth.CapabilityOrderView, ref)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed() {
		return nil, errs.NewAccessDeniedError(string(decision.Reason()))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			label,
			actor_id,
			at,
			note
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var (
			entry   GetOrderHistoryQueryResponse
			actorID uuid.UUID
		)

		err = rows.Scan(&entry.Seq, &entry.Label, &actorID, &entry.At, &entry.Note)
		if err != nil {
			return nil, err
		}

		entry.ActorID, err = kernel.UUIDFromBytes(actorID[:])
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// loadAccessRef fetches just the ownership and assignment columns of the
// order for the authorization check.
func (h *GetOrderHistoryQueryHandler) loadAccessRef(
	ctx context.Context, orderID kernel.UUID,
) (*auth.ResourceRef, error) {
	var row struct {
		CustomerID      uuid.UUID
		AssignedAgentID *uuid.UUID
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT customer_id, assigned_agent_id
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(row.CustomerID[:])
	if err != nil {
		return nil, err
	}

	ref := auth.ResourceRef{CustomerID: customerID}
	if row.AssignedAgentID != nil {
		agentID, idErr := kernel.UUIDFromBytes((*row.AssignedAgentID)[:])
		if idErr != nil {
			return nil, idErr
		}
		ref.AssignedAgentID = &agentID
	}

	return &ref, nil
}
