package auth

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrActorContextIsNotConstructed is returned when an ActorContext was not
	// created through the NewActorContext factory method.
	ErrActorContextIsNotConstructed = errors.New("ActorContext must be created via NewActorContext constructor")

	// ErrOverrideRequiresAgentRole is returned when a capability override is
	// supplied for a role other than fulfillment_agent. Per-identity permission
	// subsets only exist for agents.
	ErrOverrideRequiresAgentRole = errs.NewValueIsInvalidError(
		"capability override is only supported for fulfillment_agent actors",
	)
)

// ActorContext is the authenticated identity and role of the caller,
// resolved once per request from a verified credential. It is immutable and
// request-local: never cache or share one across requests.
//
// The optional capability override narrows (or reshapes) the role's default
// set for one specific agent, e.g. a trainee who may view and validate but
// not ship. A nil override means the role defaults apply.
type ActorContext struct {
	identity kernel.UUID
	role     Role
	override []Capability

	isConstructed bool
}

// NewActorContext builds an actor context from a verified
// (identity, role, override) triple. Supplying an override for any role but
// fulfillment_agent is a contract violation and fails construction.
func NewActorContext(identity kernel.UUID, role Role, override []Capability) (ActorContext, error) {
	if err := identity.Validate(); err != nil {
		return ActorContext{}, err
	}
	if err := role.Validate(); err != nil {
		return ActorContext{}, err
	}
	if override != nil && role != RoleFulfillmentAgent {
		return ActorContext{}, ErrOverrideRequiresAgentRole
	}
	for _, c := range override {
		if err := c.Validate(); err != nil {
			return ActorContext{}, err
		}
	}

	actor := ActorContext{
		identity:      identity,
		role:          role,
		isConstructed: true,
	}
	if override != nil {
		actor.override = make([]Capability, len(override))
		copy(actor.override, override)
	}

	return actor, nil
}

// Validate ensures the ActorContext was constructed via NewActorContext.
// A malformed actor is a programming-contract violation, not a runtime
// condition the evaluator recovers from.
func (a ActorContext) Validate() error {
	if !a.isConstructed {
		return ErrActorContextIsNotConstructed
	}
	return nil
}

// Identity returns the actor's opaque identity.
func (a ActorContext) Identity() kernel.UUID {
	return a.identity
}

// Role returns the actor's role.
func (a ActorContext) Role() Role {
	return a.role
}

// HasOverride reports whether a per-identity capability override is present.
func (a ActorContext) HasOverride() bool {
	return a.override != nil
}

// EffectiveCapabilities returns the capability set this actor exercises:
// the per-identity override when present, otherwise the role defaults from
// the catalog. The administrator wildcard is not represented here; it is
// applied by the evaluator before any set lookup.
func (a ActorContext) EffectiveCapabilities() CapabilitySet {
	if a.override != nil {
		return NewCapabilitySet(a.override...)
	}
	return CapabilitiesFor(a.role)
}
