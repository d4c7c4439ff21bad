package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	FileURL      string    `gorm:"size:255;not null" json:"file_url"`
	UploadedByID uuid.UUID `gorm:"not null" json:"uploaded_by_id"`

	UploadedBy User `gorm:"foreignkey:UploadedByID" json:"uploaded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
