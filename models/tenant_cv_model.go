package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TenantCv is a tenant's shareable rental profile. ShareCode is a
// separate public identifier so a CV can be handed to an operator
// without exposing the row's primary key.
type TenantCv struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ShareCode string    `gorm:"size:12;not null;uniqueIndex" json:"share_code"`

	Headline string `gorm:"size:255" json:"headline"`
	AboutMe  string `gorm:"type:text" json:"about_me"`

	Hobbies     datatypes.JSON `gorm:"default:'[]'" json:"hobbies"`
	RentHistory datatypes.JSON `gorm:"default:'[]'" json:"rent_history"`

	PdfURL *string `gorm:"size:255" json:"pdf_url"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TenantCv) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
