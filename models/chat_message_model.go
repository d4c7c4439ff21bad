package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only; messages are never edited or deleted on
// their own and go away with their appointment.
type ChatMessage struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"not null;index" json:"appointment_id"`
	SenderID      uuid.UUID `gorm:"not null" json:"sender_id"`
	Message       string    `gorm:"type:text;not null" json:"message"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
