package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'tenant'" json:"role"`

	PhoneNumber       *string `gorm:"size:30" json:"phone_number"`
	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`

	// Operator-only display fields. Empty for tenants.
	CompanyName *string `gorm:"size:255" json:"company_name,omitempty"`

	// A user's booking requests, preferences, CV and match snapshots are
	// removed with the account. No orphaned rows.
	BookingRequests []BookingRequest `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
	Preferences     *Preferences     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"preferences,omitempty"`
	TenantCv        *TenantCv        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	MatchSnapshots  []MatchSnapshot  `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
