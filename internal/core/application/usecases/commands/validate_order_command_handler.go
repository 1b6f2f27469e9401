package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/ports"
)

// ValidateOrderCommandHandler handles the commercial validation of orders:
// pending -> confirmed, with the change recorded in the order history.
// Validation requires the order.validate capability, scoped to the order.
type ValidateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewValidateOrderCommandHandler creates a handler for order validation operations.
func NewValidateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) ValidateOrderCommandHandler {
	return ValidateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order validation command.
// Loads the order, authorizes the actor against it, applies the confirm
// transition, and persists under optimistic concurrency.
func (h ValidateOrderCommandHandler) Handle(ctx context.Context, cmd ValidateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOnOrder(cmd.Actor(), auth.CapabilityOrderValidate, aggregate); err != nil {
		return err
	}

	if err = aggregate.Confirm(cmd.Actor().Identity(), cmd.Note(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}
