package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/deftec/counseling_platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"09:30", "09:30"},
		{"9:30", "09:30"},
		{"9:05", "09:05"},
		{"23:59", "23:59"},
		{"0:00", "00:00"},
	}
	for _, tc := range cases {
		if got := normalizeClock(tc.in); got != tc.want {
			t.Fatalf("normalizeClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUnpaddedTimeSharesSlotWithPaddedTime(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)
	student := seedUser(t, db, models.RoleStudent)
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	first := models.Appointment{
		ID:               uuid.New(),
		StudentID:        student.ID,
		CounselorID:      counselor.ID,
		SpecializationID: uuid.New(),
		Date:             day,
		Time:             normalizeClock("09:30"),
		Status:           models.AppointmentPending,
	}
	if err := createAppointmentSlot(db, &first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// "9:30" passes the request validator but must land in the same slot.
	second := models.Appointment{
		ID:               uuid.New(),
		StudentID:        student.ID,
		CounselorID:      counselor.ID,
		SpecializationID: first.SpecializationID,
		Date:             day,
		Time:             normalizeClock("9:30"),
		Status:           models.AppointmentPending,
	}
	if err := createAppointmentSlot(db, &second); !errors.Is(err, errSlotTaken) {
		t.Fatalf("unpadded booking of a taken slot: got %v, want errSlotTaken", err)
	}
}

func TestCreateAppointmentSlotRejectsTakenSlot(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)
	student := seedUser(t, db, models.RoleStudent)
	other := seedUser(t, db, models.RoleStudent)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	first := models.Appointment{
		ID:               uuid.New(),
		StudentID:        student.ID,
		CounselorID:      counselor.ID,
		SpecializationID: uuid.New(),
		Date:             day,
		Time:             "10:00",
		Status:           models.AppointmentPending,
	}
	if err := createAppointmentSlot(db, &first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	clash := models.Appointment{
		ID:               uuid.New(),
		StudentID:        other.ID,
		CounselorID:      counselor.ID,
		SpecializationID: first.SpecializationID,
		Date:             day,
		Time:             "10:00",
		Status:           models.AppointmentPending,
	}
	if err := createAppointmentSlot(db, &clash); !errors.Is(err, errSlotTaken) {
		t.Fatalf("second booking: got %v, want errSlotTaken", err)
	}

	// A different time on the same day is fine.
	clash.ID = uuid.New()
	clash.Time = "11:00"
	if err := createAppointmentSlot(db, &clash); err != nil {
		t.Fatalf("booking a free slot: %v", err)
	}
}

func TestSlotIndexBacksUpConflictCheck(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)
	student := seedUser(t, db, models.RoleStudent)
	day := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	seedAppointment(t, db, student.ID, counselor.ID, day, "14:00")

	// A writer that raced past the conflict check hits the unique index
	// on (counselor_id, date, time) and gets the translated error.
	duplicate := models.Appointment{
		ID:               uuid.New(),
		StudentID:        student.ID,
		CounselorID:      counselor.ID,
		SpecializationID: uuid.New(),
		Date:             day,
		Time:             "14:00",
		Status:           models.AppointmentPending,
	}
	if err := db.Create(&duplicate).Error; !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert: got %v, want gorm.ErrDuplicatedKey", err)
	}

	var count int64
	db.Model(&models.Appointment{}).
		Where("counselor_id = ? AND date = ? AND time = ?", counselor.ID, day, "14:00").
		Count(&count)
	if count != 1 {
		t.Fatalf("slot holds %d appointments, want 1", count)
	}
}
