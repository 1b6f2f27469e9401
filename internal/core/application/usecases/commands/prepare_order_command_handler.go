package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/ports"
)

// PrepareOrderCommandHandler moves a confirmed order into preparation.
// Preparation is part of the fulfillment flow, so it requires the
// order.update_logistics capability, scoped to the order.
type PrepareOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewPrepareOrderCommandHandler creates a handler for order preparation operations.
func NewPrepareOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) PrepareOrderCommandHandler {
	return PrepareOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order preparation command.
func (h PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) error {
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

	if err = authorizeOnOrder(cmd.Actor(), auth.CapabilityOrderUpdateLogistics, aggregate); err != nil {
		return err
	}

	if err = aggregate.StartPreparing(cmd.Actor().Identity(), cmd.Note(), time.Now().UTC()); err != nil {
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
