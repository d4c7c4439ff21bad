package handlers

import (
	"testing"
	"time"

	"github.com/deftec/counseling_platform/database"
	"github.com/deftec/counseling_platform/jobs"
	"github.com/deftec/counseling_platform/middleware"
	"github.com/deftec/counseling_platform/models"
)

func TestHeartbeatRestoresOnlineAfterSweep(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	// The counselor was active, then stopped heartbeating for longer
	// than the TTL and got swept offline.
	stale := time.Now().Add(-2 * models.PresenceTTL)
	if err := middleware.RecordHeartbeat(db, counselor.ID, stale); err != nil {
		t.Fatalf("initial heartbeat: %v", err)
	}
	jobs.SweepStalePresence()

	var status models.UserStatus
	if err := db.First(&status, "user_id = ?", counselor.ID).Error; err != nil {
		t.Fatalf("load status after sweep: %v", err)
	}
	if status.IsOnline {
		t.Fatal("stale counselor still marked online after sweep")
	}

	// The next authenticated request must bring them back online.
	now := time.Now()
	if err := middleware.RecordHeartbeat(db, counselor.ID, now); err != nil {
		t.Fatalf("heartbeat after sweep: %v", err)
	}
	if err := db.First(&status, "user_id = ?", counselor.ID).Error; err != nil {
		t.Fatalf("reload status: %v", err)
	}
	if !status.Online(now) {
		t.Fatal("counselor stayed offline after heartbeating again")
	}
}

func TestHeartbeatDoesNotOverrideExplicitOffline(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)
	now := time.Now()

	if _, err := setAvailability(db, counselor.ID, false, now); err != nil {
		t.Fatalf("go offline: %v", err)
	}
	if err := middleware.RecordHeartbeat(db, counselor.ID, now.Add(time.Second)); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	var status models.UserStatus
	if err := db.First(&status, "user_id = ?", counselor.ID).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}
	if !status.ExplicitOffline {
		t.Fatal("heartbeat cleared the explicit offline flag")
	}
	if status.Online(now.Add(2 * time.Second)) {
		t.Fatal("counselor reads online despite toggling themselves offline")
	}

	// Toggling back online clears the intent.
	later := now.Add(time.Minute)
	if _, err := setAvailability(db, counselor.ID, true, later); err != nil {
		t.Fatalf("go online: %v", err)
	}
	if err := db.First(&status, "user_id = ?", counselor.ID).Error; err != nil {
		t.Fatalf("reload status: %v", err)
	}
	if !status.Online(later) {
		t.Fatal("counselor stayed offline after toggling back online")
	}
}

func TestSweepLeavesFreshPresenceAlone(t *testing.T) {
	db := openTestDB(t)
	counselor := seedUser(t, db, models.RoleCounselor)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	now := time.Now()
	if err := middleware.RecordHeartbeat(db, counselor.ID, now); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	jobs.SweepStalePresence()

	var status models.UserStatus
	if err := db.First(&status, "user_id = ?", counselor.ID).Error; err != nil {
		t.Fatalf("load status: %v", err)
	}
	if !status.Online(now) {
		t.Fatal("sweep flipped a fresh heartbeat offline")
	}
}
