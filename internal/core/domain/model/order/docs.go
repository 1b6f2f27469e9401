// Package order contains the Order aggregate and its fulfillment state
// machine.
//
// An order carries two independent status axes: the commercial status (the
// customer-facing lifecycle: pending, confirmed, preparing, shipped,
// delivered, cancelled, returned) and the logistics status (the physical
// shipment lifecycle: to_prepare, shipping, delivered, returned). The axes
// evolve independently but are kept consistent by the aggregate: a logistics
// change to shipping or delivered pulls the commercial status along, and each
// axis change appends its own entry to the order's append-only history.
//
// All mutations go through named state-machine methods (Confirm,
// UpdateLogistics, Cancel, AssignAgent); there are no ad hoc field writes.
// Transitions that would move an axis backward or skip a required
// intermediate state fail with InvalidTransitionError, while re-applying the
// already-current target state is a no-op success.
package order
