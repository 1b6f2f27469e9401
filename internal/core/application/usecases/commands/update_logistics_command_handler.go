package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/ports"
)

// UpdateLogisticsCommandHandler advances an order's shipment lifecycle and
// lets the commercial axis follow through the aggregate's reconciliation
// rules. Requires the order.update_logistics capability, scoped to the order.
type UpdateLogisticsCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewUpdateLogisticsCommandHandler creates a handler for logistics update operations.
func NewUpdateLogisticsCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) UpdateLogisticsCommandHandler {
	return UpdateLogisticsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the logistics update command.
// Loads the order, authorizes the actor against it, applies the logistics
// transition with its tracking patch, and persists under optimistic
// concurrency.
func (h UpdateLogisticsCommandHandler) Handle(ctx context.Context, cmd UpdateLogisticsCommand) error {
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

	err = aggregate.UpdateLogistics(
		cmd.Actor().Identity(),
		cmd.Target(),
		cmd.TrackingPatch(),
		cmd.Note(),
		time.Now().UTC(),
	)
	if err != nil {
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
