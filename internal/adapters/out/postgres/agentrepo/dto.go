// Package agentrepo provides data transfer objects and mapping functions for
// fulfillment agent persistence.
package agentrepo

import (
	"storefront/internal/core/domain/model/agent"
	"storefront/internal/core/domain/model/auth"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent aggregates.
//
// HasOverride distinguishes "no override, role defaults apply" from "override
// set to an empty capability set": both store zero capability rows, only the
// flag differs.
type AgentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Active      bool      `gorm:"index;not null"`
	HasOverride bool      `gorm:"not null"`

	Capabilities []AgentCapabilityDTO `gorm:"foreignKey:AgentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for agent entities.
func (AgentDTO) TableName() string {
	return "agents"
}

// AgentCapabilityDTO represents one capability token of an agent's override.
type AgentCapabilityDTO struct {
	AgentID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Capability string    `gorm:"primaryKey"`
}

// TableName specifies the database table name for agent capability overrides.
func (AgentCapabilityDTO) TableName() string {
	return "agent_capabilities"
}

// fromDomain converts an agent domain aggregate to its database representation.
func fromDomain(aggregate *agent.Agent) AgentDTO {
	override := aggregate.CapabilityOverride()
	capabilities := make([]AgentCapabilityDTO, 0, len(override))
	for _, c := range override {
		capabilities = append(capabilities, AgentCapabilityDTO{
			AgentID:    aggregate.ID().Bytes(),
			Capability: string(c),
		})
	}

	return AgentDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Active:       aggregate.IsActive(),
		HasOverride:  aggregate.HasCapabilityOverride(),
		Capabilities: capabilities,
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var override []auth.Capability
	if dto.HasOverride {
		override = make([]auth.Capability, 0, len(dto.Capabilities))
		for _, c := range dto.Capabilities {
			override = append(override, auth.Capability(c.Capability))
		}
	}

	return agent.RestoreAgent(id, dto.Name, dto.Active, override)
}
