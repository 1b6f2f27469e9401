package orderrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// updatableColumns is the explicit column list for version-checked updates.
// Listing the columns forces GORM to write zero values too (an unassigned
// agent, a cleared note), which Updates with a struct would silently skip.
var updatableColumns = []string{
	"assigned_agent_id",
	"commercial_status",
	"logistics_status",
	"tracking_carrier",
	"tracking_number",
	"tracking_estimated_delivery",
	"tracking_actual_delivery",
	"version",
	"updated_at",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its line items and the
// genesis history entry.
//
// A lost race on the daily number sequence surfaces as a version conflict:
// two concurrent checkouts count the same day total, derive the same number,
// and the loser's insert trips the unique index. The caller re-counts inside
// a fresh transaction and takes the next sequence.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isNumberTaken(err) {
			return errs.NewVersionConflictErrorWithCause(
				"order number", dto.Number, aggregate.Version(), err,
			)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// isNumberTaken reports whether err is the unique-index violation on the
// order number column. 23505 is the Postgres unique_violation code.
func isNumberTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "number")
}

// Update saves an existing order using optimistic concurrency: the row is
// matched on both id and the version the aggregate was loaded with, and the
// stored version is bumped by one. A zero-row match means someone else wrote
// the order in between; the caller gets a version conflict and must re-read.
//
// New history entries are appended in the same call. Existing entries are
// never touched: the insert skips rows whose (order_id, seq) already exists.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select(updatableColumns).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguishing "gone" from "stale" would need an extra read; both
		// resolve the same way for the caller: re-read and retry.
		return errs.NewVersionConflictError("order", aggregate.ID().String(), aggregate.Version())
	}

	if len(dto.History) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.History).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its line items and full history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountCreatedOn counts orders created on the given UTC calendar day.
// Used to derive the next date-scoped order number sequence; must run in the
// same transaction as the subsequent Add.
func (r *GormOrderRepository) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetFirstUnassigned retrieves the oldest open order that has no fulfillment
// agent yet. This is the assignment job's work queue head. Pending orders
// qualify too: the agent has to be assigned before they can validate, so
// assignment precedes confirmation.
func (r *GormOrderRepository) GetFirstUnassigned(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.preloaded(ctx).
		Where("commercial_status NOT IN ('delivered', 'cancelled', 'returned') AND assigned_agent_id IS NULL").
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first unassigned")
		}
		return nil, err
	}

	return toDomain(dto)
}

// preloaded returns a query with items and history loaded in their domain
// order.
func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("idx") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") })
}
