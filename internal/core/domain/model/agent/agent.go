package agent

import (
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create an agent without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
)

// Agent represents a fulfillment staff member.
// It is an aggregate root that manages the agent's identity, availability for
// order assignment, and the optional per-identity capability override.
//
// Business rules:
//   - Agent must have a valid UUID and a non-empty name
//   - New agents start active and eligible for assignment
//   - Deactivated agents keep their order assignments but receive no new ones
//   - The capability override is a full replacement of the role defaults:
//     nil means "role defaults apply", an empty non-nil override means "no
//     capabilities at all"
type Agent struct {
	// id uniquely identifies the agent
	id kernel.UUID
	// name is the human-readable name of the agent
	name string
	// active reports whether the agent is eligible for new assignments
	active bool
	// capabilityOverride replaces the fulfillment_agent defaults when non-nil
	capabilityOverride []auth.Capability
	// guard ensures the agent was properly constructed
	guard guard.ConstructorGuard
}

// NewAgent creates a new active Agent with the role's default capabilities.
// This is the only way to create a valid Agent instance.
func NewAgent(id kernel.UUID, name string) (*Agent, error) {
	agent := &Agent{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agent.setID(id),
		agent.setName(name),
	); err != nil {
		return nil, err
	}

	return agent, nil
}

// RestoreAgent reconstructs an Agent aggregate from persistent storage,
// including its activity flag and capability override. The restored agent
// behaves identically to one created through normal domain operations.
func RestoreAgent(id kernel.UUID, name string, active bool, capabilityOverride []auth.Capability) (*Agent, error) {
	agent := &Agent{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		agent.setID(id),
		agent.setName(name),
		agent.setCapabilityOverride(capabilityOverride),
	); err != nil {
		return nil, err
	}

	return agent, nil
}

// IsEqual compares two agents for equality based on their unique identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// Validate checks if the Agent was properly constructed using a constructor.
// The zero value of Agent is invalid and will fail this validation.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the unique identifier of the agent.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Name returns the human-readable name of the agent.
func (a *Agent) Name() string {
	return a.name
}

// IsActive reports whether the agent is eligible for new order assignments.
func (a *Agent) IsActive() bool {
	return a.active
}

// Activate makes the agent eligible for new order assignments.
func (a *Agent) Activate() {
	a.active = true
}

// Deactivate removes the agent from the assignment pool. Orders already
// assigned to the agent stay assigned.
func (a *Agent) Deactivate() {
	a.active = false
}

// HasCapabilityOverride reports whether a per-identity override is set.
func (a *Agent) HasCapabilityOverride() bool {
	return a.capabilityOverride != nil
}

// CapabilityOverride returns a copy of the override, nil when the role
// defaults apply.
func (a *Agent) CapabilityOverride() []auth.Capability {
	if a.capabilityOverride == nil {
		return nil
	}
	out := make([]auth.Capability, len(a.capabilityOverride))
	copy(out, a.capabilityOverride)
	return out
}

// SetCapabilityOverride replaces the agent's capability override. Every token
// must be well-formed; an empty (non-nil) override strips the agent of all
// capabilities.
func (a *Agent) SetCapabilityOverride(capabilities []auth.Capability) error {
	return a.setCapabilityOverride(capabilities)
}

// ClearCapabilityOverride removes the override so the role defaults apply.
func (a *Agent) ClearCapabilityOverride() {
	a.capabilityOverride = nil
}

// ActorContext builds the authorization context this agent acts under:
// the fulfillment_agent role plus the agent's capability override, if any.
func (a *Agent) ActorContext() (auth.ActorContext, error) {
	return auth.NewActorContext(a.id, auth.RoleFulfillmentAgent, a.CapabilityOverride())
}

// setID sets the agent's unique identifier with validation.
// This is an internal setter used during agent construction.
func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

// setName sets the agent's name with validation.
// This is an internal setter used during agent construction.
func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	a.name = name
	return nil
}

// setCapabilityOverride validates and copies the override tokens.
func (a *Agent) setCapabilityOverride(capabilities []auth.Capability) error {
	if capabilities == nil {
		a.capabilityOverride = nil
		return nil
	}

	for _, c := range capabilities {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	a.capabilityOverride = make([]auth.Capability, len(capabilities))
	copy(a.capabilityOverride, capabilities)
	return nil
}
