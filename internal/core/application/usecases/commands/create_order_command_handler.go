package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Derives the next date-scoped order number and creates the order in pending
// status, owned by the acting customer.
//
// The number sequence is derived from a count of the day's orders inside the
// same transaction that inserts the new row; together with the unique index
// on the number column this keeps concurrent checkouts from colliding.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for the post-commit change notification.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// Counts the day's orders to derive the next CMD-YYYYMMDD-NNN number, creates
// the aggregate with its genesis history entry, and persists it atomically.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	createdToday, err := orderRepo.CountCreatedOn(ctx, now)
	if err != nil {
		return err
	}

	number, err := kernel.NewOrderNumber(now, createdToday+1)
	if err != nil {
		return err
	}

	customerID := cmd.Actor().Identity()
	aggregate, err := order.NewOrder(cmd.OrderID(), number, customerID, cmd.Items(), customerID, now)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Post-commit notification is best-effort by contract.
	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}
