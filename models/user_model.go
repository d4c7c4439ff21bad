package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "admin"
	RoleCounselor = "counselor"
	RoleStudent   = "student"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'student'" json:"role"`

	// Students register unapproved; admin and counselor accounts are
	// created approved.
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	ServiceNumber *string `gorm:"size:50" json:"service_number"`
	Rank          *string `gorm:"size:50" json:"rank"`
	School        *string `gorm:"size:100" json:"school"`
	ClassName     *string `gorm:"size:50" json:"class_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
