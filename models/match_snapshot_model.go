package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MatchSnapshot is the persisted result of scoring one tenant's
// preferences against one listed property. Snapshots are refreshed by
// the cron job and overwritten in place, one row per pair.
type MatchSnapshot struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_tenant_property" json:"tenant_id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_tenant_property" json:"property_id"`

	MatchScore      float64        `gorm:"not null" json:"match_score"`
	MatchCategories datatypes.JSON `gorm:"default:'[]'" json:"match_categories"`

	ComputedAt time.Time `json:"computed_at"`

	Tenant   User     `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MatchSnapshot) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
