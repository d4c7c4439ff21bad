package middleware

import (
	"log"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordHeartbeat upserts the passive side of a counselor's presence:
// last_seen moves forward and is_online is restored, so a counselor whose
// heartbeat lapsed (and whom the sweep flipped offline) reads online again
// on their next request. ExplicitOffline is left alone; only the status
// toggle writes it.
func RecordHeartbeat(db *gorm.DB, userID uuid.UUID, now time.Time) error {
	status := models.UserStatus{
		ID:       uuid.New(),
		UserID:   userID,
		IsOnline: true,
		LastSeen: now,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_online": true,
			"last_seen": now,
		}),
	}).Create(&status).Error
}

// TrackPresence is the counselor heartbeat middleware.
func TrackPresence() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) == models.RoleCounselor {
			userID := CurrentUserID(c)
			if err := RecordHeartbeat(database.DB, userID, time.Now()); err != nil {
				log.Printf("Failed to record presence heartbeat for %s: %v", userID, err)
			}
		}
		return c.Next()
	}
}
