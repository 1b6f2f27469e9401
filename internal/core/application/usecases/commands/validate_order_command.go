package commands

import (
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrValidateOrderCommandIsNotConstructed = errors.New(
	"ValidateOrderCommand must be created via NewValidateOrderCommand constructor",
)

// ValidateOrderCommand represents the commercial validation of a pending
// order: stock and payment checked, the order confirmed for fulfillment.
type ValidateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   auth.ActorContext
	note    string

	guard guard.ConstructorGuard
}

// NewValidateOrderCommand creates a command to confirm a pending order.
// The note is an optional free-form remark recorded in the order history.
func NewValidateOrderCommand(
	orderID kernel.UUID,
	actor auth.ActorContext,
	note string,
) (ValidateOrderCommand, error) {
	command := ValidateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return ValidateOrderCommand{}, err
	}

	command.note = note
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateOrderCommand) Validate() error {
	return c.guard.Validate(ErrValidateOrderCommandIsNotConstructed)
}

// OrderID returns the target order's unique identifier.
func (c ValidateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the validating actor's context.
func (c ValidateOrderCommand) Actor() auth.ActorContext {
	return c.actor
}

// Note returns the optional history remark.
func (c ValidateOrderCommand) Note() string {
	return c.note
}

func (c *ValidateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ValidateOrderCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
