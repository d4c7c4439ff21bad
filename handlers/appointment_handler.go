package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/deftec/counseling_platform/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookAppointmentRequest struct {
	SpecializationID string `json:"specialization_id" validate:"required,uuid"`
	CounselorID      string `json:"counselor_id" validate:"required,uuid"`
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string `json:"time" validate:"required,datetime=15:04"`
}

var errSlotTaken = errors.New("the counselor already has an appointment at that date and time")

// normalizeClock canonicalizes an HH:MM value. The datetime validator
// accepts unpadded hours like "9:30", which would break both lexicographic
// ordering and the slot-conflict comparison if stored verbatim.
func normalizeClock(value string) string {
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return value
	}
	return clock.Format("15:04")
}

// createAppointmentSlot inserts the appointment unless the counselor's
// slot is taken. The pre-check gives the friendly conflict answer; the
// unique index on (counselor, date, time) closes the race where two first
// bookings of a free slot pass the check concurrently.
func createAppointmentSlot(db *gorm.DB, appointment *models.Appointment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var clash models.Appointment
		err := tx.
			Where("counselor_id = ? AND date = ? AND time = ?",
				appointment.CounselorID, appointment.Date, appointment.Time).
			First(&clash).Error
		if err == nil {
			return errSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errSlotTaken
			}
			return err
		}
		return nil
	})
}

// BookAppointment creates a pending appointment for the current student.
// The counselor must carry the requested specialization and be approved;
// a counselor cannot be booked twice for the same date and time.
func BookAppointment(c *fiber.Ctx) error {
	studentID := middleware.CurrentUserID(c)

	var req BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	specializationID, _ := uuid.Parse(req.SpecializationID)
	counselorID, _ := uuid.Parse(req.CounselorID)
	date, _ := time.Parse("2006-01-02", req.Date)
	clock := normalizeClock(req.Time)

	var profile models.Counselor
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", counselorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Counselor not found"})
	}
	if profile.SpecializationID != specializationID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Counselor does not offer the selected specialization"})
	}
	if !profile.User.IsApproved {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Counselor is not approved"})
	}

	appointment := models.Appointment{
		StudentID:        studentID,
		CounselorID:      counselorID,
		SpecializationID: specializationID,
		Date:             date,
		Time:             clock,
		Status:           models.AppointmentPending,
	}
	if err := createAppointmentSlot(database.DB, &appointment); err != nil {
		if errors.Is(err, errSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book appointment"})
	}

	go func() {
		var student models.User
		if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
			return
		}
		notifications.SendEmail(profile.User.FullName(), profile.User.Email, "New Appointment Request",
			fmt.Sprintf("<h1>New Appointment</h1><p>%s has requested a session on %s at %s.</p>",
				student.FullName(), req.Date, clock))
	}()

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetMyAppointments lists the current user's appointments, soonest first.
// Works for students and counselors alike.
func GetMyAppointments(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var appointments []models.Appointment
	database.DB.
		Preload("Student").
		Preload("Counselor").
		Preload("Specialization").
		Where("student_id = ? OR counselor_id = ?", userID, userID).
		Order("date asc, time asc").
		Find(&appointments)

	return c.JSON(appointments)
}

type CounselorAppointmentRow struct {
	ID             uuid.UUID `json:"id"`
	StudentName    string    `json:"student_name"`
	StudentID      uuid.UUID `json:"student_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	Specialization string    `json:"specialization"`
}

// GetCounselorAppointments returns the compact rows the counselor
// dashboard table consumes.
func GetCounselorAppointments(c *fiber.Ctx) error {
	counselorID := middleware.CurrentUserID(c)

	var appointments []models.Appointment
	database.DB.
		Preload("Student").
		Preload("Specialization").
		Where("counselor_id = ?", counselorID).
		Order("date asc, time asc").
		Find(&appointments)

	rows := make([]CounselorAppointmentRow, 0, len(appointments))
	for _, appt := range appointments {
		rows = append(rows, CounselorAppointmentRow{
			ID:             appt.ID,
			StudentName:    appt.Student.FullName(),
			StudentID:      appt.StudentID,
			Date:           appt.DateString(),
			Time:           appt.Time,
			Status:         appt.Status,
			Specialization: appt.Specialization.Name,
		})
	}

	return c.JSON(rows)
}

// GetAppointmentDetail returns one appointment with its chat history and
// the counselor's effective presence. Participants only.
func GetAppointmentDetail(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	appointmentID := c.Params("appointmentId")

	var appointment models.Appointment
	if err := database.DB.
		Preload("Student").
		Preload("Counselor").
		Preload("Specialization").
		First(&appointment, "id = ?", appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Appointment not found"})
	}
	if !appointment.IsParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this appointment"})
	}

	var messages []models.ChatMessage
	database.DB.
		Preload("Sender").
		Where("appointment_id = ?", appointment.ID).
		Order("created_at asc").
		Find(&messages)

	counselorOnline := false
	var status models.UserStatus
	if err := database.DB.First(&status, "user_id = ?", appointment.CounselorID).Error; err == nil {
		counselorOnline = status.Online(time.Now())
	}

	return c.JSON(fiber.Map{
		"appointment":      appointment,
		"messages":         messages,
		"counselor_online": counselorOnline,
	})
}
