package auth

import "storefront/internal/core/domain/model/kernel"

// DenyReason is a stable machine-readable code explaining a refusal.
// Reasons contain no sensitive data and are safe to surface verbatim.
type DenyReason string

const (
	// DenyInsufficientPermission: the capability is not in the actor's effective set.
	DenyInsufficientPermission DenyReason = "insufficient_permission"

	// DenyNotOwner: the customer does not own the target resource.
	DenyNotOwner DenyReason = "not_owner"

	// DenyNotAssigned: the agent is not assigned to the target resource.
	DenyNotAssigned DenyReason = "not_assigned"
)

// Decision is the outcome of an authorization check. A deny is a normal,
// expected result the caller must branch on, never an error.
type Decision struct {
	allowed bool
	reason  DenyReason
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{allowed: true}
}

// Deny returns a refusing decision carrying the given reason code.
func Deny(reason DenyReason) Decision {
	return Decision{allowed: false, reason: reason}
}

// Allowed reports whether the check passed.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Reason returns the deny reason code; empty for allowing decisions.
func (d Decision) Reason() DenyReason {
	return d.reason
}

// ResourceRef carries the ownership and assignment metadata of a target
// resource for fine-grained checks. It is a read-only projection of the
// aggregate, not the aggregate itself.
type ResourceRef struct {
	// CustomerID is the owner of the resource.
	CustomerID kernel.UUID

	// AssignedAgentID is the fulfillment agent assigned to the resource,
	// nil while unassigned.
	AssignedAgentID *kernel.UUID
}
