package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/ports"
)

// CancelOrderCommandHandler terminates an order before it ships.
// Requires the order.cancel capability, scoped to the order: customers cancel
// their own orders, agents cancel orders assigned to them, administrators
// cancel anything still cancellable.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation operations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = authorizeOnOrder(cmd.Actor(), auth.CapabilityOrderCancel, aggregate); err != nil {
		return err
	}

	if err = aggregate.Cancel(cmd.Actor().Identity(), cmd.Reason(), time.Now().UTC()); err != nil {
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
