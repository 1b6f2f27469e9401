package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrLineItemsAreRequired is returned when an order is created without line items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("order requires at least one line item")
)

// Order is the aggregate root of a purchase. It owns the two status axes
// (commercial and logistics), the assignment to a fulfillment agent, the
// shipment tracking details, and the append-only history of every status
// change.
//
// Invariants:
//   - the order number is assigned once at creation and never changes
//   - history only grows; each mutation appends exactly the entries for the
//     axis changes it actually made
//   - the axes stay consistent: logistics shipping/delivered/returned pulls
//     the commercial status along through the reconciliation rules
//   - every mutation goes through a named state-machine method; there is no
//     way to write a status field directly
//
// The version field is the optimistic-concurrency token: it holds the value
// read from storage and is incremented by the repository on every successful
// write. The aggregate never mutates it.
type Order struct {
	id              kernel.UUID
	orderNumber     kernel.OrderNumber
	customerID      kernel.UUID
	assignedAgentID *kernel.UUID
	items           []LineItem

	commercialStatus CommercialStatus
	logisticsStatus  LogisticsStatus
	tracking         Tracking
	history          []HistoryEntry

	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order at checkout completion: commercial status
// pending, logistics status to_prepare, version zero, and a single genesis
// history entry recorded for the creating actor (the customer).
//
// The order number must have been generated for the creation date before
// calling; number generation and aggregate creation commit in one
// transaction.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customerID kernel.UUID,
	items []LineItem,
	createdBy kernel.UUID,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		customerID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrLineItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		id:               id,
		orderNumber:      number,
		customerID:       customerID,
		items:            append([]LineItem(nil), items...),
		commercialStatus: CommercialPending,
		logisticsStatus:  LogisticsToPrepare,
		createdAt:        now,
		updatedAt:        now,
		isConstructed:    true,
	}

	if err := o.appendHistory(CommercialPending.String(), createdBy, now, "order created"); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. All invariants are
// re-validated so corrupted rows surface as errors instead of invalid
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customerID kernel.UUID,
	assignedAgentID *kernel.UUID,
	items []LineItem,
	commercialStatus CommercialStatus,
	logisticsStatus LogisticsStatus,
	tracking Tracking,
	history []HistoryEntry,
	version int,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		customerID.Validate(),
		commercialStatus.Validate(),
		logisticsStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if assignedAgentID != nil {
		if err := assignedAgentID.Validate(); err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, ErrLineItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	for _, entry := range history {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 0 {
		return nil, errs.NewValueIsInvalidError("version is negative")
	}

	return &Order{
		id:               id,
		orderNumber:      number,
		customerID:       customerID,
		assignedAgentID:  assignedAgentID,
		items:            append([]LineItem(nil), items...),
		commercialStatus: commercialStatus,
		logisticsStatus:  logisticsStatus,
		tracking:         tracking,
		history:          append([]HistoryEntry(nil), history...),
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the immutable human-readable order number.
func (o *Order) Number() kernel.OrderNumber {
	return o.orderNumber
}

// CustomerID returns the owning customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// AssignedAgent returns the assigned fulfillment agent's ID, nil while unassigned.
func (o *Order) AssignedAgent() *kernel.UUID {
	return o.assignedAgentID
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// CommercialStatus returns the customer-facing lifecycle stage.
func (o *Order) CommercialStatus() CommercialStatus {
	return o.commercialStatus
}

// LogisticsStatus returns the shipment lifecycle stage.
func (o *Order) LogisticsStatus() LogisticsStatus {
	return o.logisticsStatus
}

// Tracking returns the current shipment tracking details.
func (o *Order) Tracking() Tracking {
	return o.tracking
}

// History returns a copy of the append-only history, ordered by sequence.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Version returns the optimistic-concurrency token as read from storage.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TotalCents returns the order total over all line items.
func (o *Order) TotalCents() int64 {
	var total int64
	for _, item := range o.items {
		total += item.TotalCents()
	}
	return total
}

// AccessRef returns the ownership/assignment projection the authorization
// evaluator needs for resource-scoped checks.
func (o *Order) AccessRef() auth.ResourceRef {
	return auth.ResourceRef{
		CustomerID:      o.customerID,
		AssignedAgentID: o.assignedAgentID,
	}
}

// Confirm validates the order commercially: pending -> confirmed. The
// logistics axis is (re)set to to_prepare, a no-op when already there, and
// one history entry is appended for the commercial change. Confirmation is
// rejected from any non-pending status — it happens exactly once.
func (o *Order) Confirm(actorID kernel.UUID, note string, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.commercialStatus.Confirm()
	if err != nil {
		return err
	}

	o.commercialStatus = newStatus
	o.logisticsStatus = LogisticsToPrepare
	o.updatedAt = now
	return o.appendHistory(newStatus.String(), actorID, now, note)
}

// StartPreparing moves the order into picking/packing: confirmed -> preparing,
// appending one history entry. Re-applying preparing is a no-op success.
func (o *Order) StartPreparing(actorID kernel.UUID, note string, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, changed, err := o.commercialStatus.StartPreparing()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	o.commercialStatus = newStatus
	o.updatedAt = now
	return o.appendHistory(newStatus.String(), actorID, now, note)
}

// UpdateLogistics applies a transition on the logistics axis and reconciles
// the commercial axis:
//
//	shipping  => commercial shipped   (unless already shipped/delivered)
//	delivered => commercial delivered (unless already delivered)
//	returned  => commercial returned  (unless already returned)
//
// The supplied tracking patch is merged non-destructively. One history entry
// is appended per axis that actually changed, so a reconciliating update
// appends two entries in one call. Requesting the already-current status is
// a no-op success that still merges the tracking patch. If the reconciliation
// is impossible (e.g. shipping a never-validated pending order) the whole
// call fails and the order is left untouched.
func (o *Order) UpdateLogistics(
	actorID kernel.UUID,
	target LogisticsStatus,
	trackingPatch Tracking,
	note string,
	now time.Time,
) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newLogistics, logisticsChanged, err := o.logisticsStatus.TransitionTo(target)
	if err != nil {
		return err
	}

	if !logisticsChanged {
		if !trackingPatch.IsZero() {
			o.tracking = o.tracking.Merge(trackingPatch)
			o.updatedAt = now
		}
		return nil
	}

	// Resolve the commercial implication before touching anything, so a
	// rejected reconciliation leaves the aggregate untouched.
	newCommercial, commercialChanged, err := o.reconcileCommercial(target)
	if err != nil {
		return err
	}

	o.logisticsStatus = newLogistics
	o.tracking = o.tracking.Merge(trackingPatch)
	o.updatedAt = now
	if err := o.appendHistory(newLogistics.String(), actorID, now, note); err != nil {
		return err
	}

	if commercialChanged {
		o.commercialStatus = newCommercial
		if err := o.appendHistory(newCommercial.String(), actorID, now, note); err != nil {
			return err
		}
	}

	return nil
}

// reconcileCommercial maps a logistics target onto the commercial axis.
func (o *Order) reconcileCommercial(target LogisticsStatus) (CommercialStatus, bool, error) {
	switch target {
	case LogisticsShipping:
		return o.commercialStatus.MarkShipped()
	case LogisticsDelivered:
		return o.commercialStatus.MarkDelivered()
	case LogisticsReturned:
		return o.commercialStatus.MarkReturned()
	default:
		return o.commercialStatus, false, nil
	}
}

// Cancel terminates the order commercially. Valid from any commercial status
// strictly before shipped; cancelling an already-cancelled order is a no-op
// success. Once shipped or beyond the cancellation is rejected.
func (o *Order) Cancel(actorID kernel.UUID, reason string, now time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	newStatus, changed, err := o.commercialStatus.Cancel()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	o.commercialStatus = newStatus
	o.updatedAt = now
	return o.appendHistory(newStatus.String(), actorID, now, reason)
}

// AssignAgent assigns (or reassigns) the order to a fulfillment agent.
// Assignment is only meaningful while the order can still move forward
// commercially; terminal orders reject it. Assignment is not a status change
// and appends no history entry.
func (o *Order) AssignAgent(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.commercialStatus.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"order cannot be assigned",
			fmt.Errorf("commercial status is %s", o.commercialStatus),
		)
	}

	o.assignedAgentID = &agentID
	o.updatedAt = now
	return nil
}

// appendHistory appends one entry with the next sequence number.
func (o *Order) appendHistory(label string, actorID kernel.UUID, at time.Time, note string) error {
	entry, err := NewHistoryEntry(len(o.history)+1, label, actorID, at, note)
	if err != nil {
		return err
	}
	o.history = append(o.history, entry)
	return nil
}
