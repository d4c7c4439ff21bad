package jobs

import (
	"log"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/models"
)

// SweepStalePresence flips counselors offline once their heartbeat has
// lapsed, so listings stay truthful even if nobody reads their status.
func SweepStalePresence() {
	cutoff := time.Now().Add(-models.PresenceTTL)

	result := database.DB.Model(&models.UserStatus{}).
		Where("is_online = true AND last_seen < ?", cutoff).
		Update("is_online", false)
	if result.Error != nil {
		log.Printf("Error sweeping stale presence rows: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d counselor(s) offline after missed heartbeats.", result.RowsAffected)
	}
}
