package models

import (
	"time"

	"github.com/google/uuid"
)

// Counselor is the one-to-one profile attached to a user with the
// counselor role.
type Counselor struct {
	UserID           uuid.UUID `gorm:"primary_key" json:"user_id"`
	SpecializationID uuid.UUID `gorm:"not null" json:"specialization_id"`
	Phone            *string   `gorm:"size:20" json:"phone"`
	Bio              *string   `gorm:"type:text" json:"bio"`

	User           User           `gorm:"foreignkey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Specialization Specialization `gorm:"foreignkey:SpecializationID" json:"specialization"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
