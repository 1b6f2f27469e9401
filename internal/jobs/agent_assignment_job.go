package jobs

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AgentAssignmentJob hands open orders to fulfillment agents on a schedule.
// Runs every second to match the oldest unassigned open order with the least
// loaded active agent, so every order has its agent before validation.
type AgentAssignmentJob struct {
	handler commands.AssignAgentCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAgentAssignmentJob creates a new job for assigning agents.
func NewAgentAssignmentJob(handler commands.AssignAgentCommandHandler, logger *slog.Logger) *AgentAssignmentJob {
	return &AgentAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "agent_assignment_job"),
	}
}

// Start begins the agent assignment job to run every second.
func (j *AgentAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAssignAgentCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue or a fully busy staff roster is the normal idle
			// state, not a failure.
			if !errors.Is(err, commands.ErrNoOrderFound) && !errors.Is(err, commands.ErrNoActiveAgentFound) {
				j.logger.ErrorContext(ctx, "Agent assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Agent assignment job started (running every second)")
	return nil
}

// Stop stops the agent assignment job.
func (j *AgentAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Agent assignment job stopped")
}
