package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Building is the managed aggregate a property can inherit location and
// amenity context from.
type Building struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OperatorID *uuid.UUID `gorm:"type:uuid;index" json:"operator_id"`

	Name         string  `gorm:"size:255;not null" json:"name"`
	AddressLine1 string  `gorm:"size:255;not null" json:"address_line_1"`
	AddressLine2 *string `gorm:"size:255" json:"address_line_2"`
	City         string  `gorm:"size:100;not null" json:"city"`
	Postcode     string  `gorm:"size:20;not null" json:"postcode"`

	TenantTypes    datatypes.JSON `gorm:"default:'[]'" json:"tenant_types"`
	Amenities      datatypes.JSON `gorm:"default:'[]'" json:"amenities"`
	Images         datatypes.JSON `gorm:"default:'[]'" json:"images"`
	ConciergeHours *string        `gorm:"size:100" json:"concierge_hours"`
	PetPolicy      *string        `gorm:"size:100" json:"pet_policy"`

	Properties []Property `gorm:"foreignKey:BuildingID" json:"properties,omitempty"`
	Operator   *User      `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Building) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
