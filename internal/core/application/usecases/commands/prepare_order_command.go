package commands

import (
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrPrepareOrderCommandIsNotConstructed = errors.New(
	"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
)

// PrepareOrderCommand represents the start of picking and packing for a
// confirmed order: confirmed -> preparing on the commercial axis.
type PrepareOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   auth.ActorContext
	note    string

	guard guard.ConstructorGuard
}

// NewPrepareOrderCommand creates a command to start preparing a confirmed order.
func NewPrepareOrderCommand(
	orderID kernel.UUID,
	actor auth.ActorContext,
	note string,
) (PrepareOrderCommand, error) {
	command := PrepareOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return PrepareOrderCommand{}, err
	}

	command.note = note
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

// OrderID returns the target order's unique identifier.
func (c PrepareOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the preparing actor's context.
func (c PrepareOrderCommand) Actor() auth.ActorContext {
	return c.actor
}

// Note returns the optional history remark.
func (c PrepareOrderCommand) Note() string {
	return c.note
}

func (c *PrepareOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PrepareOrderCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
