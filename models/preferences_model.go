package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Preferences holds a tenant's stored search criteria, one row per
// account. KycStatus and ReferencingStatus mirror the verification
// pipeline so the matching views can read them without a join.
type Preferences struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	MinBudget *float64 `gorm:"type:numeric(10,2)" json:"min_budget"`
	MaxBudget *float64 `gorm:"type:numeric(10,2)" json:"max_budget"`

	MinBedrooms  *int `json:"min_bedrooms"`
	MaxBedrooms  *int `json:"max_bedrooms"`
	MinBathrooms *int `json:"min_bathrooms"`

	MoveInFrom *time.Time `json:"move_in_from"`

	Locations         datatypes.JSON `gorm:"default:'[]'" json:"locations"`
	PropertyTypes     datatypes.JSON `gorm:"default:'[]'" json:"property_types"`
	LifestyleFeatures datatypes.JSON `gorm:"default:'[]'" json:"lifestyle_features"`

	KycStatus         string `gorm:"size:30;not null;default:'not_started'" json:"kyc_status"`
	ReferencingStatus string `gorm:"size:30;not null;default:'not_started'" json:"referencing_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Preferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
