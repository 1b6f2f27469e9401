package order

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for every rejected state change.
// Use errors.Is to classify; the concrete InvalidTransitionError carries the
// axis and the from/to states for diagnostics.
var ErrInvalidTransition = errors.New("invalid transition")

// Status axis names used in InvalidTransitionError diagnostics.
const (
	AxisCommercial = "commercial"
	AxisLogistics  = "logistics"
)

// InvalidTransitionError reports a state change that is not reachable from
// the current state. It is an expected result the caller branches on, safe
// to surface verbatim.
type InvalidTransitionError struct {
	Axis string
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given axis and states.
func NewInvalidTransitionError(axis, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Axis: axis, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s status cannot move from %s to %s", ErrInvalidTransition, e.Axis, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CommercialStatus is the customer-facing lifecycle stage of an order.
//
// Forward chain:
//
//	pending ──> confirmed ──> preparing ──> shipped ──> delivered ──> returned
//	    │            │            │
//	    └────────────┴────────────┴──> cancelled
//
// cancelled is reachable from any status strictly before shipped; returned
// only from delivered. delivered, cancelled, and returned admit no further
// transitions (save delivered -> returned).
type CommercialStatus int

const (
	// CommercialUnknown represents an invalid or undefined status.
	CommercialUnknown CommercialStatus = iota

	// CommercialPending is the initial status assigned at checkout completion.
	CommercialPending

	// CommercialConfirmed means a fulfillment agent validated the order.
	CommercialConfirmed

	// CommercialPreparing means the order is being picked and packed.
	CommercialPreparing

	// CommercialShipped means the parcel left the warehouse.
	CommercialShipped

	// CommercialDelivered means the parcel reached the customer.
	CommercialDelivered

	// CommercialCancelled is a terminal side-exit taken before shipping.
	CommercialCancelled

	// CommercialReturned is a terminal status reachable after delivery only.
	CommercialReturned
)

func getCommercialStatusStrings() map[CommercialStatus]string {
	return map[CommercialStatus]string{
		CommercialUnknown:   "unknown",
		CommercialPending:   "pending",
		CommercialConfirmed: "confirmed",
		CommercialPreparing: "preparing",
		CommercialShipped:   "shipped",
		CommercialDelivered: "delivered",
		CommercialCancelled: "cancelled",
		CommercialReturned:  "returned",
	}
}

func getValidCommercialStatusStrings() map[CommercialStatus]string {
	//nolint:exhaustive // CommercialUnknown is intentionally excluded as it's invalid
	return map[CommercialStatus]string{
		CommercialPending:   "pending",
		CommercialConfirmed: "confirmed",
		CommercialPreparing: "preparing",
		CommercialShipped:   "shipped",
		CommercialDelivered: "delivered",
		CommercialCancelled: "cancelled",
		CommercialReturned:  "returned",
	}
}

// CommercialStatusFromString parses a stored commercial status label.
func CommercialStatusFromString(s string) (CommercialStatus, error) {
	for status, name := range getValidCommercialStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return CommercialUnknown, errs.NewValueIsInvalidErrorWithCause(
		"commercial status is invalid",
		fmt.Errorf("%q is not a valid commercial status", s),
	)
}

// Validate checks if the CommercialStatus value is valid.
func (s CommercialStatus) Validate() error {
	if _, ok := getValidCommercialStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"commercial status is invalid",
			fmt.Errorf("%d is not a valid commercial status", s),
		)
	}
	return nil
}

// String returns the lowercase label used in history entries and persistence.
func (s CommercialStatus) String() string {
	if str, ok := getCommercialStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further commercial
// transitions. delivered is terminal here in the sense that only the
// logistics-driven return path leaves it.
func (s CommercialStatus) IsTerminal() bool {
	return s == CommercialDelivered || s == CommercialCancelled || s == CommercialReturned
}

// Confirm transitions pending -> confirmed. Confirmation is deliberately not
// idempotent: an order is validated exactly once, and replaying the request
// from any non-pending status is an InvalidTransitionError.
func (s CommercialStatus) Confirm() (CommercialStatus, error) {
	if s != CommercialPending {
		return CommercialUnknown, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialConfirmed.String())
	}
	return CommercialConfirmed, nil
}

// StartPreparing transitions confirmed -> preparing, the picking/packing
// stage. Re-applying preparing is a no-op (changed false).
func (s CommercialStatus) StartPreparing() (CommercialStatus, bool, error) {
	switch s {
	case CommercialConfirmed:
		return CommercialPreparing, true, nil
	case CommercialPreparing:
		return s, false, nil
	default:
		return CommercialUnknown, false, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialPreparing.String())
	}
}

// MarkShipped advances to shipped from confirmed or preparing. Statuses
// already at or past shipped on the forward path are left unchanged
// (changed false); anything else, including pending, is rejected — an order
// must be validated before it ships.
func (s CommercialStatus) MarkShipped() (CommercialStatus, bool, error) {
	switch s {
	case CommercialConfirmed, CommercialPreparing:
		return CommercialShipped, true, nil
	case CommercialShipped, CommercialDelivered:
		return s, false, nil
	default:
		return CommercialUnknown, false, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialShipped.String())
	}
}

// MarkDelivered advances shipped -> delivered; delivered stays unchanged.
func (s CommercialStatus) MarkDelivered() (CommercialStatus, bool, error) {
	switch s {
	case CommercialShipped:
		return CommercialDelivered, true, nil
	case CommercialDelivered:
		return s, false, nil
	default:
		return CommercialUnknown, false, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialDelivered.String())
	}
}

// MarkReturned transitions delivered -> returned; returned stays unchanged.
// Returns are only meaningful after delivery.
func (s CommercialStatus) MarkReturned() (CommercialStatus, bool, error) {
	switch s {
	case CommercialDelivered:
		return CommercialReturned, true, nil
	case CommercialReturned:
		return s, false, nil
	default:
		return CommercialUnknown, false, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialReturned.String())
	}
}

// Cancel transitions to cancelled from any status strictly before shipped.
// Cancelling an already-cancelled order is a no-op (changed false); once
// shipped or beyond, cancellation is rejected.
func (s CommercialStatus) Cancel() (CommercialStatus, bool, error) {
	switch s {
	case CommercialPending, CommercialConfirmed, CommercialPreparing:
		return CommercialCancelled, true, nil
	case CommercialCancelled:
		return s, false, nil
	default:
		return CommercialUnknown, false, NewInvalidTransitionError(AxisCommercial, s.String(), CommercialCancelled.String())
	}
}

// LogisticsStatus is the physical shipment lifecycle stage, tracked
// independently of the commercial status.
//
// Forward chain: to_prepare ──> shipping ──> delivered ──> returned
type LogisticsStatus int

const (
	// LogisticsUnknown represents an invalid or undefined status.
	LogisticsUnknown LogisticsStatus = iota

	// LogisticsToPrepare is the initial status: the parcel is not yet packed.
	LogisticsToPrepare

	// LogisticsShipping means the parcel is with the carrier.
	LogisticsShipping

	// LogisticsDelivered means the carrier confirmed delivery.
	LogisticsDelivered

	// LogisticsReturned means the parcel came back after delivery.
	LogisticsReturned
)

func getLogisticsStatusStrings() map[LogisticsStatus]string {
	return map[LogisticsStatus]string{
		LogisticsUnknown:   "unknown",
		LogisticsToPrepare: "to_prepare",
		LogisticsShipping:  "shipping",
		LogisticsDelivered: "delivered",
		LogisticsReturned:  "returned",
	}
}

func getValidLogisticsStatusStrings() map[LogisticsStatus]string {
	//nolint:exhaustive // LogisticsUnknown is intentionally excluded as it's invalid
	return map[LogisticsStatus]string{
		LogisticsToPrepare: "to_prepare",
		LogisticsShipping:  "shipping",
		LogisticsDelivered: "delivered",
		LogisticsReturned:  "returned",
	}
}

// LogisticsStatusFromString parses a stored or requested logistics status label.
func LogisticsStatusFromString(s string) (LogisticsStatus, error) {
	for status, name := range getValidLogisticsStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return LogisticsUnknown, errs.NewValueIsInvalidErrorWithCause(
		"logistics status is invalid",
		fmt.Errorf("%q is not a valid logistics status", s),
	)
}

// Validate checks if the LogisticsStatus value is valid.
func (s LogisticsStatus) Validate() error {
	if _, ok := getValidLogisticsStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"logistics status is invalid",
			fmt.Errorf("%d is not a valid logistics status", s),
		)
	}
	return nil
}

// String returns the lowercase label used in history entries and persistence.
func (s LogisticsStatus) String() string {
	if str, ok := getLogisticsStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// TransitionTo validates a requested move on the logistics axis.
// Re-applying the current status is a no-op success (changed false). The
// only moves that change state are the single forward steps
// to_prepare -> shipping -> delivered -> returned; everything else —
// backward moves and forward skips alike — is an InvalidTransitionError.
func (s LogisticsStatus) TransitionTo(target LogisticsStatus) (LogisticsStatus, bool, error) {
	if err := target.Validate(); err != nil {
		return LogisticsUnknown, false, err
	}

	if target == s {
		return s, false, nil
	}

	valid := map[LogisticsStatus]LogisticsStatus{
		LogisticsToPrepare: LogisticsShipping,
		LogisticsShipping:  LogisticsDelivered,
		LogisticsDelivered: LogisticsReturned,
	}

	if next, ok := valid[s]; ok && next == target {
		return target, true, nil
	}

	return LogisticsUnknown, false, NewInvalidTransitionError(AxisLogistics, s.String(), target.String())
}
