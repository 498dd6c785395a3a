package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one chat message in a booking-request conversation
// between the tenant and the property's operator. Messages go with the
// booking request when it is deleted.
type Message struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BookingRequestID uuid.UUID  `gorm:"type:uuid;not null;index" json:"booking_request_id"`
	SenderID         uuid.UUID  `gorm:"type:uuid;not null" json:"sender_id"`
	Content          string     `gorm:"type:text;not null" json:"content"`
	ReadAt           *time.Time `json:"read_at"`

	Sender         User           `gorm:"foreignkey:SenderID" json:"-"`
	BookingRequest BookingRequest `gorm:"foreignkey:BookingRequestID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
