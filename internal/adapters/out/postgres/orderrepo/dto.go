// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational tables with indexing for the hot
// query paths: status filtering, agent assignment, and daily number counting.
//
// The unique index on the number column is the last line of defense for
// date-scoped numbering: two transactions racing for the same daily sequence
// cannot both commit.
type OrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Number           string      `gorm:"uniqueIndex;not null"`
	CustomerID       uuid.UUID   `gorm:"type:uuid;index;not null"`
	AssignedAgentID  *uuid.UUID  `gorm:"type:uuid;index"`
	CommercialStatus string      `gorm:"index;not null"`
	LogisticsStatus  string      `gorm:"not null"`
	Tracking         TrackingDTO `gorm:"embedded;embeddedPrefix:tracking_"`
	Version          int         `gorm:"not null"`
	CreatedAt        time.Time   `gorm:"index;not null"`
	UpdatedAt        time.Time   `gorm:"not null"`

	Items   []LineItemDTO     `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// TrackingDTO represents the embedded shipment tracking columns within the
// order table. All columns are nullable-equivalent zero values; the domain
// treats them as "not supplied".
type TrackingDTO struct {
	Carrier           string
	Number            string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
}

// LineItemDTO represents one purchased position of an order. Line items are
// immutable after creation: they are inserted with the order and never
// updated. Idx preserves the checkout ordering.
type LineItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Idx            int       `gorm:"primaryKey;autoIncrement:false"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
}

// TableName specifies the database table name for order line items.
func (LineItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO represents one row of an order's append-only audit trail.
// The composite key (order_id, seq) makes inserts idempotent: replaying an
// already-persisted entry conflicts and is skipped.
type HistoryEntryDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq     int       `gorm:"primaryKey;autoIncrement:false"`
	Label   string    `gorm:"not null"`
	ActorID uuid.UUID `gorm:"type:uuid;not null"`
	At      time.Time `gorm:"not null"`
	Note    string
}

// TableName specifies the database table name for order history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			Idx:            i + 1,
			ProductID:      item.ProductID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	tracking := aggregate.Tracking()

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number().String(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		AssignedAgentID:  agentID,
		CommercialStatus: aggregate.CommercialStatus().String(),
		LogisticsStatus:  aggregate.LogisticsStatus().String(),
		Tracking: TrackingDTO{
			Carrier:           tracking.Carrier(),
			Number:            tracking.TrackingNumber(),
			EstimatedDelivery: tracking.EstimatedDelivery(),
			ActualDelivery:    tracking.ActualDelivery(),
		},
		Version:   aggregate.Version(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Items:     items,
		History:   historyFromDomain(aggregate),
	}
}

// historyFromDomain converts the aggregate's history entries to rows.
func historyFromDomain(aggregate *order.Order) []HistoryEntryDTO {
	entries := make([]HistoryEntryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		entries = append(entries, HistoryEntryDTO{
			OrderID: aggregate.ID().Bytes(),
			Seq:     entry.Seq(),
			Label:   entry.Label(),
			ActorID: entry.ActorID().Bytes(),
			At:      entry.At(),
			Note:    entry.Note(),
		})
	}
	return entries
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items, tracking, and
// history using RestoreOrder, which re-validates every invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewLineItem(productID, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entryDTO := range dto.History {
		actorID, entryErr := kernel.UUIDFromBytes(entryDTO.ActorID[:])
		if entryErr != nil {
			return nil, entryErr
		}

		entry, entryErr := order.NewHistoryEntry(
			entryDTO.Seq, entryDTO.Label, actorID, entryDTO.At, entryDTO.Note,
		)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	commercialStatus, err := order.CommercialStatusFromString(dto.CommercialStatus)
	if err != nil {
		return nil, err
	}

	logisticsStatus, err := order.LogisticsStatusFromString(dto.LogisticsStatus)
	if err != nil {
		return nil, err
	}

	tracking := order.NewTracking(
		dto.Tracking.Carrier,
		dto.Tracking.Number,
		dto.Tracking.EstimatedDelivery,
		dto.Tracking.ActualDelivery,
	)

	return order.RestoreOrder(
		id, number, customerID, agentID,
		items, commercialStatus, logisticsStatus,
		tracking, history,
		dto.Version, dto.CreatedAt, dto.UpdatedAt,
	)
}
