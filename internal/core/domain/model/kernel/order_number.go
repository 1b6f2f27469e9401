package kernel

import (
	"fmt"
	"regexp"
	"time"

	"storefront/internal/pkg/errs"
)

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not created
// through NewOrderNumber or OrderNumberFromString.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via NewOrderNumber or OrderNumberFromString",
)

// orderNumberPattern matches the CMD-YYYYMMDD-NNN format. The sequence part is
// at least three digits; it keeps growing past 999 without padding changes.
var orderNumberPattern = regexp.MustCompile(`^CMD-(\d{8})-(\d{3,})$`)

// OrderNumber is the human-readable, date-scoped order identifier shown to
// customers and staff, formatted as CMD-YYYYMMDD-NNN. The sequence NNN is
// zero-padded to width 3 and counts orders created on the same calendar date,
// starting at 001. An OrderNumber is assigned once at order creation and is
// immutable for the lifetime of the aggregate.
//
// OrderNumber is a value object: two numbers are equal iff their string
// representations are equal.
type OrderNumber struct {
	value string
}

// NewOrderNumber builds the order number for the given creation date and
// date-scoped sequence. The sequence is 1-based: the first order of the day
// gets 001. Sequences below 1 are rejected.
func NewOrderNumber(forDate time.Time, seq int) (OrderNumber, error) {
	if seq < 1 {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number sequence is invalid",
			fmt.Errorf("%d is not greater than 0", seq),
		)
	}

	return OrderNumber{
		value: fmt.Sprintf("CMD-%s-%03d", forDate.Format("20060102"), seq),
	}, nil
}

// OrderNumberFromString parses and validates a stored order number.
// Used when reconstructing aggregates from persistence.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid",
			fmt.Errorf("%q does not match CMD-YYYYMMDD-NNN", s),
		)
	}
	return OrderNumber{value: s}, nil
}

// String returns the CMD-YYYYMMDD-NNN representation.
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks that the order number was properly constructed.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
