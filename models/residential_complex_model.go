package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResidentialComplex is a named aggregation of properties under common
// management, similar to Building but spanning multiple addresses.
type ResidentialComplex struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index" json:"operator_id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	City        string  `gorm:"size:100;not null" json:"city"`
	Postcode    *string `gorm:"size:20" json:"postcode"`

	TenantTypes    datatypes.JSON `gorm:"default:'[]'" json:"tenant_types"`
	Amenities      datatypes.JSON `gorm:"default:'[]'" json:"amenities"`
	Images         datatypes.JSON `gorm:"default:'[]'" json:"images"`
	ConciergeHours *string        `gorm:"size:100" json:"concierge_hours"`
	PetPolicy      *string        `gorm:"size:100" json:"pet_policy"`

	Properties []Property `gorm:"foreignKey:ResidentialComplexID" json:"properties,omitempty"`
	Operator   *User      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ResidentialComplex) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
