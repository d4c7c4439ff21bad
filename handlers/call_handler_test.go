package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/deftec/counseling_platform/models"
	"github.com/google/uuid"
)

func TestFinalizeCallEndsOnlyOnce(t *testing.T) {
	db := openTestDB(t)
	caller := seedUser(t, db, models.RoleStudent)
	receiver := seedUser(t, db, models.RoleCounselor)

	call := models.CallLog{
		ID:         uuid.New(),
		CallerID:   caller.ID,
		ReceiverID: receiver.ID,
		CallType:   models.CallTypeVoice,
		Status:     models.CallOngoing,
		Connected:  true,
		StartedAt:  time.Now().Add(-time.Minute),
	}
	if err := db.Create(&call).Error; err != nil {
		t.Fatalf("seed call: %v", err)
	}

	// Both sides fetched the call while it was still ongoing.
	var callerCopy, receiverCopy models.CallLog
	if err := db.First(&callerCopy, "id = ?", call.ID).Error; err != nil {
		t.Fatalf("load caller copy: %v", err)
	}
	if err := db.First(&receiverCopy, "id = ?", call.ID).Error; err != nil {
		t.Fatalf("load receiver copy: %v", err)
	}

	firstEnd := time.Now()
	if err := finalizeCall(db, &callerCopy, firstEnd); err != nil {
		t.Fatalf("first end: %v", err)
	}
	if callerCopy.Status != models.CallCompleted {
		t.Fatalf("connected call ended as %q, want %q", callerCopy.Status, models.CallCompleted)
	}

	err := finalizeCall(db, &receiverCopy, firstEnd.Add(30*time.Second))
	if !errors.Is(err, models.ErrCallAlreadyEnded) {
		t.Fatalf("second end: got %v, want ErrCallAlreadyEnded", err)
	}

	var stored models.CallLog
	if err := db.First(&stored, "id = ?", call.ID).Error; err != nil {
		t.Fatalf("reload call: %v", err)
	}
	if stored.EndedAt == nil {
		t.Fatal("ended call has no end time")
	}
	if drift := stored.EndedAt.Sub(firstEnd); drift < -time.Second || drift > time.Second {
		t.Fatalf("end time moved to %v after losing end request, want %v", stored.EndedAt, firstEnd)
	}
	if stored.Status != models.CallCompleted {
		t.Fatalf("stored status %q, want %q", stored.Status, models.CallCompleted)
	}
}

func TestFinalizeCallClassifiesMissed(t *testing.T) {
	db := openTestDB(t)
	caller := seedUser(t, db, models.RoleStudent)
	receiver := seedUser(t, db, models.RoleCounselor)

	call := models.CallLog{
		ID:         uuid.New(),
		CallerID:   caller.ID,
		ReceiverID: receiver.ID,
		CallType:   models.CallTypeVideo,
		Status:     models.CallOngoing,
		StartedAt:  time.Now().Add(-time.Minute),
	}
	if err := db.Create(&call).Error; err != nil {
		t.Fatalf("seed call: %v", err)
	}

	if err := finalizeCall(db, &call, time.Now()); err != nil {
		t.Fatalf("end unanswered call: %v", err)
	}

	var stored models.CallLog
	if err := db.First(&stored, "id = ?", call.ID).Error; err != nil {
		t.Fatalf("reload call: %v", err)
	}
	if stored.Status != models.CallMissed {
		t.Fatalf("unanswered call ended as %q, want %q", stored.Status, models.CallMissed)
	}
}
