package handlers

import (
	"errors"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StartCallRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	CallType   string `json:"call_type" validate:"required,oneof=voice video"`
}

// StartCall opens an ongoing call log row. The receiver's answer signal
// decides later whether the call completed or was missed.
func StartCall(c *fiber.Ctx) error {
	callerID := middleware.CurrentUserID(c)

	var req StartCallRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	receiverID, _ := uuid.Parse(req.ReceiverID)

	if receiverID == callerID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot call yourself"})
	}
	var receiver models.User
	if err := database.DB.First(&receiver, "id = ?", receiverID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiver not found"})
	}

	call := models.CallLog{
		CallerID:   callerID,
		ReceiverID: receiverID,
		CallType:   req.CallType,
		Status:     models.CallOngoing,
		StartedAt:  time.Now(),
	}
	if err := database.DB.Create(&call).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start call"})
	}

	return c.Status(fiber.StatusCreated).JSON(call)
}

// AnswerCall is the receiver's signaling event that the call actually
// connected. Only an ongoing call can be answered.
func AnswerCall(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	callID := c.Params("callId")

	var call models.CallLog
	if err := database.DB.First(&call, "id = ?", callID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Call not found"})
	}
	if call.ReceiverID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the receiver can answer a call"})
	}
	if !call.Ongoing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Call is no longer ongoing"})
	}

	call.Connected = true
	if err := database.DB.Save(&call).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to answer call"})
	}

	return c.JSON(call)
}

// finalizeCall closes the call in storage. The update only touches rows
// still marked ongoing, so when two end requests race only one of them
// lands; the loser sees zero rows affected and gets ErrCallAlreadyEnded.
func finalizeCall(db *gorm.DB, call *models.CallLog, now time.Time) error {
	if err := call.Close(now); err != nil {
		return err
	}
	result := db.Model(&models.CallLog{}).
		Where("id = ? AND status = ?", call.ID, models.CallOngoing).
		Updates(map[string]interface{}{
			"status":   call.Status,
			"ended_at": call.EndedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrCallAlreadyEnded
	}
	return nil
}

// EndCall closes a call exactly once. A second end request is rejected and
// leaves the original end time untouched.
func EndCall(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	callID := c.Params("callId")

	var call models.CallLog
	if err := database.DB.First(&call, "id = ?", callID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Call not found"})
	}
	if call.CallerID != userID && call.ReceiverID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this call"})
	}

	if err := finalizeCall(database.DB, &call, time.Now()); err != nil {
		if errors.Is(err, models.ErrCallAlreadyEnded) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Call already ended"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to end call"})
	}

	return c.JSON(fiber.Map{
		"call":             call,
		"duration_seconds": int(call.Duration(time.Now()).Seconds()),
	})
}

// GetMyCalls lists calls the current user made or received, latest first.
func GetMyCalls(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var calls []models.CallLog
	database.DB.
		Preload("Caller").
		Preload("Receiver").
		Where("caller_id = ? OR receiver_id = ?", userID, userID).
		Order("started_at desc").
		Find(&calls)

	return c.JSON(calls)
}
