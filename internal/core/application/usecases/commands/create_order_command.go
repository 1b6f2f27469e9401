package commands

import (
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	// ErrActorMustBeCustomer is returned when someone other than a customer
	// attempts to create an order. Orders always start life owned by the
	// customer who places them.
	ErrActorMustBeCustomer = errs.NewValueIsInvalidError("orders are created by their customer")
	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("line items")
)

// CreateOrderCommand represents a checkout completion: a customer turning a
// cart into a pending order. The creating customer becomes the order's owner.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   auth.ActorContext
	items   []order.LineItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order for the
// acting customer. The actor must carry the customer role; the line items
// must be non-empty and constructed via order.NewLineItem.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor auth.ActorContext,
	items []order.LineItem,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the creating customer's context.
func (c CreateOrderCommand) Actor() auth.ActorContext {
	return c.actor
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != auth.RoleCustomer {
		return ErrActorMustBeCustomer
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.LineItem, len(items))
	copy(c.items, items)
	return nil
}
