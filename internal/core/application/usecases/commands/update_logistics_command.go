package commands

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrUpdateLogisticsCommandIsNotConstructed = errors.New(
	"UpdateLogisticsCommand must be created via NewUpdateLogisticsCommand constructor",
)

// UpdateLogisticsCommand represents a shipment progress report: a target
// logistics status plus an optional partial update of the tracking details.
type UpdateLogisticsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   auth.ActorContext
	target  order.LogisticsStatus

	carrier           string
	trackingNumber    string
	estimatedDelivery *time.Time
	actualDelivery    *time.Time
	note              string

	guard guard.ConstructorGuard
}

// NewUpdateLogisticsCommand creates a command to advance an order's logistics
// status. The tracking fields form a partial patch: empty strings and nil
// timestamps mean "leave unchanged".
func NewUpdateLogisticsCommand(
	orderID kernel.UUID,
	actor auth.ActorContext,
	target order.LogisticsStatus,
	carrier, trackingNumber string,
	estimatedDelivery, actualDelivery *time.Time,
	note string,
) (UpdateLogisticsCommand, error) {
	command := UpdateLogisticsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setTarget(target),
	); err != nil {
		return UpdateLogisticsCommand{}, err
	}

	command.carrier = carrier
	command.trackingNumber = trackingNumber
	command.estimatedDelivery = estimatedDelivery
	command.actualDelivery = actualDelivery
	command.note = note

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLogisticsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLogisticsCommandIsNotConstructed)
}

// OrderID returns the target order's unique identifier.
func (c UpdateLogisticsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the reporting actor's context.
func (c UpdateLogisticsCommand) Actor() auth.ActorContext {
	return c.actor
}

// Target returns the requested logistics status.
func (c UpdateLogisticsCommand) Target() order.LogisticsStatus {
	return c.target
}

// TrackingPatch returns the partial tracking update carried by the command.
func (c UpdateLogisticsCommand) TrackingPatch() order.Tracking {
	return order.NewTracking(c.carrier, c.trackingNumber, c.estimatedDelivery, c.actualDelivery)
}

// Note returns the optional history remark.
func (c UpdateLogisticsCommand) Note() string {
	return c.note
}

func (c *UpdateLogisticsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLogisticsCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateLogisticsCommand) setTarget(target order.LogisticsStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
