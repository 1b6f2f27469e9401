// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. AgentAssignmentJob - Runs every second to hand unassigned open orders to
// the least loaded active fulfillment agent
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignAgentHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The assignment job uses the cron expression "* * * * * *" which means it
// runs every second, keeping the time from confirmation to assignment short.
//
// # Error Handling
//
// - Assignment job ignores expected business errors (empty queue, no free agents)
// - Failed job starts report the failing job by name
package jobs
