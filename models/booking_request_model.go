package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequest records a tenant's interest in a property and tracks
// it through the lifecycle stages. At most one request may exist per
// (property, tenant) pair; the composite unique index makes creation a
// single atomic create-or-reject, never check-then-insert.
type BookingRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_property_tenant" json:"property_id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_property_tenant" json:"tenant_id"`

	Status BookingStatus `gorm:"type:booking_status;not null;default:'new'" json:"status"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"property,omitempty"`
	Tenant   User     `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"tenant,omitempty"`

	Messages []Message `gorm:"foreignKey:BookingRequestID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BookingRequest) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusNew
	}
	return nil
}

// BeforeSave keeps arbitrary strings away from the status column even
// when a write bypasses the booking service.
func (b *BookingRequest) BeforeSave(tx *gorm.DB) error {
	if !b.Status.Valid() {
		return ErrInvalidBookingStatus
	}
	return nil
}
