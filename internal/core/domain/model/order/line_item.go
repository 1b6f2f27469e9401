package order

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not created
// through the NewLineItem factory method.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// Per-line quantity bounds. The upper bound matches what the storefront
// accepts per checkout line.
const (
	minLineItemQuantity = 1
	maxLineItemQuantity = 999
)

// LineItem is one purchased position of an order: a product reference, a
// quantity, and the unit price captured at purchase time. Prices are stored
// in cents to keep arithmetic exact.
//
// LineItem is an immutable value object; the ordered sequence of line items
// is fixed at order creation.
type LineItem struct {
	productID      kernel.UUID
	quantity       int
	unitPriceCents int64

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item.
// Quantity must lie in [1, 999]; the unit price must not be negative.
func NewLineItem(productID kernel.UUID, quantity int, unitPriceCents int64) (LineItem, error) {
	if err := productID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < minLineItemQuantity || quantity > maxLineItemQuantity {
		return LineItem{}, errs.NewValueIsOutOfRangeError(
			"quantity", quantity, minLineItemQuantity, maxLineItemQuantity,
		)
	}
	if unitPriceCents < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price is invalid",
			fmt.Errorf("%d is negative", unitPriceCents),
		)
	}

	return LineItem{
		productID:      productID,
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line item was created through NewLineItem.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the referenced product.
func (li LineItem) ProductID() kernel.UUID {
	return li.productID
}

// Quantity returns the purchased quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// UnitPriceCents returns the captured unit price in cents.
func (li LineItem) UnitPriceCents() int64 {
	return li.unitPriceCents
}

// TotalCents returns quantity times unit price.
func (li LineItem) TotalCents() int64 {
	return int64(li.quantity) * li.unitPriceCents
}
