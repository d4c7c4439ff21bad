package models

import (
	"time"

	"github.com/google/uuid"
)

// PresenceTTL is how long a counselor stays online after their last
// heartbeat. A closed browser stops heartbeating and the counselor drops
// offline once the TTL lapses, either at read time or via the sweep job.
const PresenceTTL = 5 * time.Minute

// UserStatus tracks coarse counselor presence. IsOnline is passive state:
// the heartbeat sets it, the TTL sweep clears it, and the next heartbeat
// restores it. ExplicitOffline carries the counselor's own "unavailable"
// intent and is only ever written by the status toggle, so neither the
// heartbeat nor the sweep can override it.
type UserStatus struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"-"`
	UserID          uuid.UUID `gorm:"not null;uniqueIndex" json:"user_id"`
	IsOnline        bool      `gorm:"default:false" json:"is_online"`
	ExplicitOffline bool      `gorm:"default:false" json:"-"`
	LastSeen        time.Time `gorm:"not null" json:"last_seen"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	UpdatedAt time.Time `json:"-"`
}

// Online reports effective presence at the given instant.
func (s UserStatus) Online(now time.Time) bool {
	return s.IsOnline && !s.ExplicitOffline && now.Sub(s.LastSeen) <= PresenceTTL
}
