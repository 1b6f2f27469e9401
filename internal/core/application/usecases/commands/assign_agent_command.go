package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand triggers the assignment of a fulfillment agent to a
// confirmed order that has none yet. It picks the oldest such order and the
// least-loaded active agent.
type AssignAgentCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a new command to trigger agent assignment.
// This is a parameterless command run periodically by the assignment job.
func NewAssignAgentCommand() AssignAgentCommand {
	return AssignAgentCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignAgentCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignAgentCommandIsNotConstructed,
	)
}
