package handlers

import (
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline"`
}

// setAvailability records the counselor's explicit intent. Going offline
// sets ExplicitOffline, which heartbeats and the sweep never touch; going
// online clears it again.
func setAvailability(db *gorm.DB, userID uuid.UUID, online bool, now time.Time) (models.UserStatus, error) {
	status := models.UserStatus{
		ID:              uuid.New(),
		UserID:          userID,
		IsOnline:        online,
		ExplicitOffline: !online,
		LastSeen:        now,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_online":        online,
			"explicit_offline": !online,
			"last_seen":        now,
		}),
	}).Create(&status).Error
	return status, err
}

// UpdateStatus is the counselor's explicit availability toggle.
func UpdateStatus(c *fiber.Ctx) error {
	counselorID := middleware.CurrentUserID(c)

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	now := time.Now()
	status, err := setAvailability(database.DB, counselorID, req.Status == "online", now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
	}

	return c.JSON(fiber.Map{"is_online": status.Online(now)})
}

// GetUserStatus reports a user's effective presence. Users never observed
// by the tracker read as offline.
func GetUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var status models.UserStatus
	if err := database.DB.First(&status, "user_id = ?", userID).Error; err != nil {
		return c.JSON(fiber.Map{"is_online": false, "last_seen": nil})
	}

	return c.JSON(fiber.Map{
		"is_online": status.Online(time.Now()),
		"last_seen": status.LastSeen,
	})
}
