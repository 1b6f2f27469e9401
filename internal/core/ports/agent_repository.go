// Package ports defines repository and outbound interfaces for the
// storefront domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/agent"
	"storefront/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for fulfillment agent
// aggregates, including their activity flag and capability override.
type AgentRepository interface {
	// Add persists a new agent aggregate to storage.
	// The agent must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent aggregate.
	// The agent must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetLeastLoaded retrieves the active agent with the fewest open orders
	// currently assigned. Orders in a terminal commercial status do not count
	// toward an agent's load. Ties break on the lowest agent id so the
	// selection stays deterministic.
	GetLeastLoaded(ctx context.Context) (*agent.Agent, error)
}
