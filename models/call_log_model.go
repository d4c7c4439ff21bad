package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CallTypeVoice = "voice"
	CallTypeVideo = "video"
)

const (
	CallOngoing   = "ongoing"
	CallCompleted = "completed"
	CallMissed    = "missed"
)

var ErrCallAlreadyEnded = errors.New("call already ended")

// CallLog records one call attempt between two users. Calls are log rows,
// not media sessions: Connected is set by the receiver's answer signal and
// decides whether an ended call counts as completed or missed.
type CallLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CallerID   uuid.UUID `gorm:"not null;index" json:"caller_id"`
	ReceiverID uuid.UUID `gorm:"not null;index" json:"receiver_id"`
	CallType   string    `gorm:"size:10;not null" json:"call_type"`
	Status     string    `gorm:"size:20;not null;default:'ongoing';index" json:"status"`
	Connected  bool      `gorm:"default:false" json:"connected"`

	StartedAt time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`

	Caller   User `gorm:"foreignkey:CallerID" json:"caller,omitempty"`
	Receiver User `gorm:"foreignkey:ReceiverID" json:"receiver,omitempty"`
}

// Ongoing reports whether the call has not been ended yet. EndedAt is nil
// exactly while the call is ongoing.
func (c CallLog) Ongoing() bool {
	return c.Status == CallOngoing
}

// Close ends the call at the given instant, classifying the outcome from
// the connected flag. Closing a terminal call is rejected so EndedAt never
// drifts after the first end signal.
func (c *CallLog) Close(now time.Time) error {
	if !c.Ongoing() {
		return ErrCallAlreadyEnded
	}
	c.EndedAt = &now
	if c.Connected {
		c.Status = CallCompleted
	} else {
		c.Status = CallMissed
	}
	return nil
}

// Duration returns elapsed call time, live against now while the call is
// ongoing and fixed once ended. Never negative, even under clock skew.
func (c CallLog) Duration(now time.Time) time.Duration {
	end := now
	if c.EndedAt != nil {
		end = *c.EndedAt
	}
	d := end.Sub(c.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}
