package commands

import (
	"errors"

	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateAgentCommandIsNotConstructed = errors.New(
		"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
	)
	// ErrAgentNameIsRequired is returned when an agent is created without a name.
	ErrAgentNameIsRequired = errs.NewValueIsRequiredError("name")
)

// CreateAgentCommand represents the onboarding of a fulfillment agent,
// optionally with a capability override narrowing the role defaults.
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID            kernel.UUID
	actor              auth.ActorContext
	name               string
	capabilityOverride []auth.Capability

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand creates a command to register a new fulfillment
// agent. A nil capabilityOverride leaves the role defaults in place; a
// non-nil one replaces them entirely.
func NewCreateAgentCommand(
	agentID kernel.UUID,
	actor auth.ActorContext,
	name string,
	capabilityOverride []auth.Capability,
) (CreateAgentCommand, error) {
	command := CreateAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setActor(actor),
		command.setName(name),
		command.setCapabilityOverride(capabilityOverride),
	); err != nil {
		return CreateAgentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

// AgentID returns the unique identifier for the new agent.
func (c CreateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Actor returns the onboarding actor's context.
func (c CreateAgentCommand) Actor() auth.ActorContext {
	return c.actor
}

// Name returns the agent's human-readable name.
func (c CreateAgentCommand) Name() string {
	return c.name
}

// CapabilityOverride returns the optional capability override, nil when the
// role defaults apply.
func (c CreateAgentCommand) CapabilityOverride() []auth.Capability {
	return c.capabilityOverride
}

func (c *CreateAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *CreateAgentCommand) setActor(actor auth.ActorContext) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateAgentCommand) setName(name string) error {
	if name == "" {
		return ErrAgentNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateAgentCommand) setCapabilityOverride(capabilities []auth.Capability) error {
	if capabilities == nil {
		return nil
	}

	for _, capability := range capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
	}

	c.capabilityOverride = make([]auth.Capability, len(capabilities))
	copy(c.capabilityOverride, capabilities)
	return nil
}
