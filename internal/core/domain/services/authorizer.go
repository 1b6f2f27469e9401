package services

import (
	"storefront/internal/core/domain/model/auth"
)

// Authorizer is the domain service answering "may this actor perform this
// action, on this resource?". It is deterministic and side-effect free:
// the same inputs always produce the same decision.
//
// Evaluation order:
//  1. administrator wildcard — admins pass every check, including
//     capabilities introduced after this code was written
//  2. capability check against the actor's effective set (the per-identity
//     override when present, otherwise the role defaults)
//  3. resource scoping, when a resource is supplied — customers must own
//     the resource, agents must be assigned to it
//
// A refusal is a Decision carrying a reason code, never an error: denies are
// expected outcomes the caller branches on.
type Authorizer struct{}

// NewAuthorizer creates a new Authorizer instance.
func NewAuthorizer() Authorizer {
	return Authorizer{}
}

// Authorize evaluates whether actor may exercise capability. A nil resource
// requests a pure capability check; a non-nil resource additionally applies
// the ownership/assignment scoping for the actor's role.
func (a Authorizer) Authorize(
	actor auth.ActorContext,
	capability auth.Capability,
	resource *auth.ResourceRef,
) (auth.Decision, error) {
	if err := actor.Validate(); err != nil {
		return auth.Decision{}, err
	}
	if err := capability.Validate(); err != nil {
		return auth.Decision{}, err
	}

	// Wildcard first: the admin decision never consults capability sets, so
	// unknown future capabilities are covered too.
	if actor.Role() == auth.RoleAdministrator {
		return auth.Allow(), nil
	}

	if !actor.EffectiveCapabilities().Contains(capability) {
		return auth.Deny(auth.DenyInsufficientPermission), nil
	}

	if resource == nil {
		return auth.Allow(), nil
	}

	return a.authorizeOnResource(actor, *resource), nil
}

// authorizeOnResource applies the per-role resource scoping. The capability
// check has already passed; only the actor-to-resource relation is judged
// here.
func (a Authorizer) authorizeOnResource(actor auth.ActorContext, resource auth.ResourceRef) auth.Decision {
	switch actor.Role() {
	case auth.RoleCustomer:
		if !resource.CustomerID.IsEqual(actor.Identity()) {
			return auth.Deny(auth.DenyNotOwner)
		}
		return auth.Allow()

	case auth.RoleFulfillmentAgent:
		if resource.AssignedAgentID == nil || !resource.AssignedAgentID.IsEqual(actor.Identity()) {
			return auth.Deny(auth.DenyNotAssigned)
		}
		return auth.Allow()

	default:
		// Unreachable for constructed actors; fail closed anyway.
		return auth.Deny(auth.DenyInsufficientPermission)
	}
}
