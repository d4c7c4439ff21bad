package handlers

import (
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CounselorOption struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GetCounselorsBySpecialization backs the cascading booking form: given a
// specialization it returns the approved counselors offering it. A missing
// or unparsable specialization yields an empty list, never an error.
func GetCounselorsBySpecialization(c *fiber.Ctx) error {
	options := []CounselorOption{}

	specializationID, err := uuid.Parse(c.Query("specialization"))
	if err != nil {
		return c.JSON(options)
	}

	var counselors []models.Counselor
	database.DB.
		Preload("User").
		Joins("JOIN users ON users.id = counselors.user_id AND users.is_approved = true").
		Where("counselors.specialization_id = ?", specializationID).
		Find(&counselors)

	for _, counselor := range counselors {
		options = append(options, CounselorOption{
			ID:   counselor.UserID,
			Name: counselor.User.FullName(),
		})
	}

	return c.JSON(options)
}

// GetCounselorDashboard aggregates the counselor's home screen numbers.
func GetCounselorDashboard(c *fiber.Ctx) error {
	counselorID := middleware.CurrentUserID(c)

	var profile models.Counselor
	if err := database.DB.
		Preload("User").
		Preload("Specialization").
		First(&profile, "user_id = ?", counselorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Counselor profile not found"})
	}

	var total, pending, completed int64
	database.DB.Model(&models.Appointment{}).Where("counselor_id = ?", counselorID).Count(&total)
	database.DB.Model(&models.Appointment{}).Where("counselor_id = ? AND status = ?", counselorID, models.AppointmentPending).Count(&pending)
	database.DB.Model(&models.Appointment{}).Where("counselor_id = ? AND status = ?", counselorID, models.AppointmentCompleted).Count(&completed)

	var missedCalls []models.CallLog
	database.DB.
		Preload("Caller").
		Where("receiver_id = ? AND status = ?", counselorID, models.CallMissed).
		Order("started_at desc").
		Find(&missedCalls)

	online := false
	var status models.UserStatus
	if err := database.DB.First(&status, "user_id = ?", counselorID).Error; err == nil {
		online = status.Online(time.Now())
	}

	return c.JSON(fiber.Map{
		"profile":            profile,
		"total_appointments": total,
		"pending_count":      pending,
		"completed_count":    completed,
		"missed_calls":       missedCalls,
		"is_online":          online,
	})
}
