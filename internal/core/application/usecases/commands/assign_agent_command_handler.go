package commands

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

var (
	// ErrNoOrderFound is returned when no order awaits assignment.
	ErrNoOrderFound = errors.New("no order found")
	// ErrNoActiveAgentFound is returned when the agent pool is empty.
	ErrNoActiveAgentFound = errors.New("no active agent found")
)

// AssignAgentCommandHandler orchestrates the agent assignment process.
// Finds the oldest open unassigned order and hands it to the active agent
// with the fewest open orders. Pending orders are assigned too, so the agent
// who will validate an order is known before validation happens. Assignment
// is bookkeeping, not a status change: the order's history is untouched.
type AssignAgentCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.OrderEventPublisher
}

// NewAssignAgentCommandHandler creates a handler for agent assignment operations.
// Requires a UoWFactory for coordinating transactional updates across repositories.
func NewAssignAgentCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the agent assignment command.
// Returns ErrNoOrderFound when nothing awaits assignment and
// ErrNoActiveAgentFound when the pool is empty; both are expected idle
// outcomes for the periodic job.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, command AssignAgentCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetFirstUnassigned(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	assignee, err := agentRepo.GetLeastLoaded(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoActiveAgentFound
	}
	if err != nil {
		return err
	}

	if err = aggregate.AssignAgent(assignee.ID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderChanged(ctx, aggregate)

	return nil
}
