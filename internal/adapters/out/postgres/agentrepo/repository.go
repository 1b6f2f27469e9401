package agentrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/agent"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgentRepository implements AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent to the database together with its capability
// override rows.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing agent. The capability override rows are replaced
// wholesale: deleted and re-inserted to reflect the current override exactly.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&AgentDTO{}).
		Select("name", "active", "has_override").
		Where("id = ?", dto.ID).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
	}

	err := r.db.WithContext(ctx).
		Where("agent_id = ?", dto.ID).
		Delete(&AgentCapabilityDTO{}).Error
	if err != nil {
		return err
	}

	if len(dto.Capabilities) > 0 {
		err = r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Capabilities).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by ID with its capability override.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	err := r.db.WithContext(ctx).
		Preload("Capabilities").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLeastLoaded retrieves the active agent currently carrying the fewest
// open orders (commercial status not terminal). Ties break on the lowest
// agent ID so the pick is deterministic.
func (r *GormAgentRepository) GetLeastLoaded(ctx context.Context) (*agent.Agent, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.id
		FROM agents a
		LEFT JOIN orders o
			ON o.assigned_agent_id = a.id
			AND o.commercial_status NOT IN ('delivered', 'cancelled', 'returned')
		WHERE a.active
		GROUP BY a.id
		ORDER BY COUNT(o.id), a.id
		LIMIT 1`).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errs.NewObjectNotFoundError("agent", "least loaded active")
	}

	id, err := kernel.UUIDFromBytes(ids[0][:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}
