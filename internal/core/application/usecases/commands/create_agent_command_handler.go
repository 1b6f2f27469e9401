package commands

import (
	"context"

	"storefront/internal/core/domain/model/agent"
	"storefront/internal/core/domain/model/auth"
)

// CreateAgentCommandHandler handles the onboarding of fulfillment agents.
// Requires the staff.manage capability, which no role's default set carries:
// in practice only administrators pass, via the wildcard.
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewCreateAgentCommandHandler creates a handler for agent onboarding operations.
func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agent creation command.
func (h CreateAgentCommandHandler) Handle(ctx context.Context, cmd CreateAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := authorize(cmd.Actor(), auth.CapabilityStaffManage); err != nil {
		return err
	}

	aggregate, err := agent.NewAgent(cmd.AgentID(), cmd.Name())
	if err != nil {
		return err
	}

	if override := cmd.CapabilityOverride(); override != nil {
		if err = aggregate.SetCapabilityOverride(override); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AgentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
