package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses. Bookings are always created pending; approved and
// completed are part of the declared lifecycle but no endpoint advances a
// booking yet, which keeps the transition surface open for a later release.
const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentCompleted = "completed"
)

type Appointment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID        uuid.UUID `gorm:"not null;index" json:"student_id"`
	CounselorID      uuid.UUID `gorm:"not null;index;uniqueIndex:idx_counselor_slot" json:"counselor_id"`
	SpecializationID uuid.UUID `gorm:"not null" json:"specialization_id"`

	Date   time.Time `gorm:"type:date;not null;index;uniqueIndex:idx_counselor_slot" json:"date"`
	Time   string    `gorm:"size:5;not null;uniqueIndex:idx_counselor_slot" json:"time"`
	Status string    `gorm:"size:10;not null;default:'pending';index" json:"status"`

	Student        User           `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Counselor      User           `gorm:"foreignkey:CounselorID" json:"counselor,omitempty"`
	Specialization Specialization `gorm:"foreignkey:SpecializationID" json:"specialization,omitempty"`
	Messages       []ChatMessage  `gorm:"foreignkey:AppointmentID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// DateString renders the appointment day as YYYY-MM-DD for API payloads.
func (a Appointment) DateString() string {
	return a.Date.Format("2006-01-02")
}

// IsParticipant reports whether the given user is the student or the
// counselor on this appointment.
func (a Appointment) IsParticipant(userID uuid.UUID) bool {
	return a.StudentID == userID || a.CounselorID == userID
}

// OtherParticipant returns the counterpart of the given participant.
func (a Appointment) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if a.StudentID == userID {
		return a.CounselorID
	}
	return a.StudentID
}
