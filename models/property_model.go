package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a rentable unit. A property may belong to a managed
// Building and/or ResidentialComplex, or stand alone as a private
// landlord listing, which is why price, bedrooms and the other
// headline fields are nullable. OperatorID records whoever created the
// listing, whatever their role; completeness for publication is
// validated in the service layer, not here.
type Property struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	OperatorID           *uuid.UUID `gorm:"type:uuid;index" json:"operator_id"`
	BuildingID           *uuid.UUID `gorm:"type:uuid;index" json:"building_id"`
	ResidentialComplexID *uuid.UUID `gorm:"type:uuid;index" json:"residential_complex_id"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	AddressLine1 *string `gorm:"size:255" json:"address_line_1"`
	AddressLine2 *string `gorm:"size:255" json:"address_line_2"`
	City         *string `gorm:"size:100" json:"city"`
	Postcode     *string `gorm:"size:20" json:"postcode"`

	Price         *float64   `gorm:"type:numeric(10,2)" json:"price"`
	Bedrooms      *int       `json:"bedrooms"`
	Bathrooms     *int       `json:"bathrooms"`
	PropertyType  *string    `gorm:"size:50" json:"property_type"`
	Furnishing    *string    `gorm:"size:50" json:"furnishing"`
	AvailableFrom *time.Time `json:"available_from"`

	// Ordered tagged-value lists, default []. Unattached listings carry
	// their own copies of the building-level amenity data.
	LifestyleFeatures datatypes.JSON `gorm:"default:'[]'" json:"lifestyle_features"`
	Amenities         datatypes.JSON `gorm:"default:'[]'" json:"amenities"`
	CommuteTimes      datatypes.JSON `gorm:"default:'[]'" json:"commute_times"`
	Images            datatypes.JSON `gorm:"default:'[]'" json:"images"`
	Documents         datatypes.JSON `gorm:"default:'[]'" json:"documents"`
	VideoURL          *string        `gorm:"size:255" json:"video_url"`

	TenantTypes    datatypes.JSON `gorm:"default:'[]'" json:"tenant_types"`
	ConciergeHours *string        `gorm:"size:100" json:"concierge_hours"`
	PetPolicy      *string        `gorm:"size:100" json:"pet_policy"`

	// Listed flips to true once the listing passes completeness
	// validation. Drafts stay queryable by their operator only.
	Listed bool `gorm:"not null;default:false" json:"listed"`

	BookingRequests []BookingRequest `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	MatchSnapshots  []MatchSnapshot  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`

	Operator           *User               `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
	Building           *Building           `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	ResidentialComplex *ResidentialComplex `gorm:"foreignKey:ResidentialComplexID" json:"residential_complex,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
