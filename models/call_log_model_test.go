package models

import (
	"testing"
	"time"
)

func TestCloseUnansweredCallIsMissed(t *testing.T) {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	call := CallLog{Status: CallOngoing, StartedAt: started}

	if err := call.Close(started.Add(30 * time.Second)); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if call.Status != CallMissed {
		t.Fatalf("expected status %q, got %q", CallMissed, call.Status)
	}
	if call.EndedAt == nil {
		t.Fatalf("expected EndedAt to be set")
	}
}

func TestCloseAnsweredCallIsCompleted(t *testing.T) {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	call := CallLog{Status: CallOngoing, Connected: true, StartedAt: started}

	if err := call.Close(started.Add(10 * time.Minute)); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if call.Status != CallCompleted {
		t.Fatalf("expected status %q, got %q", CallCompleted, call.Status)
	}
	if d := call.Duration(started.Add(time.Hour)); d != 10*time.Minute {
		t.Fatalf("expected fixed duration 10m after close, got %v", d)
	}
}

func TestCloseTwiceRejected(t *testing.T) {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	call := CallLog{Status: CallOngoing, Connected: true, StartedAt: started}

	firstEnd := started.Add(time.Minute)
	if err := call.Close(firstEnd); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := call.Close(started.Add(2 * time.Minute)); err != ErrCallAlreadyEnded {
		t.Fatalf("expected ErrCallAlreadyEnded, got %v", err)
	}
	if !call.EndedAt.Equal(firstEnd) {
		t.Fatalf("EndedAt drifted after second close: %v", call.EndedAt)
	}
}

func TestEndedAtNilWhileOngoing(t *testing.T) {
	call := CallLog{Status: CallOngoing, StartedAt: time.Now()}
	if !call.Ongoing() || call.EndedAt != nil {
		t.Fatalf("ongoing call must have nil EndedAt")
	}

	if err := call.Close(time.Now()); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if call.Ongoing() || call.EndedAt == nil {
		t.Fatalf("closed call must have EndedAt set and not be ongoing")
	}
}

func TestDurationMonotonicWhileOngoing(t *testing.T) {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	call := CallLog{Status: CallOngoing, StartedAt: started}

	previous := time.Duration(-1)
	for i := 0; i < 5; i++ {
		now := started.Add(time.Duration(i) * time.Second)
		d := call.Duration(now)
		if d < previous {
			t.Fatalf("duration decreased: %v after %v", d, previous)
		}
		previous = d
	}
}

func TestDurationNeverNegative(t *testing.T) {
	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	skewed := started.Add(-time.Minute)

	call := CallLog{Status: CallOngoing, StartedAt: started}
	if d := call.Duration(skewed); d != 0 {
		t.Fatalf("expected clamped zero duration, got %v", d)
	}

	call.EndedAt = &skewed
	call.Status = CallCompleted
	if d := call.Duration(started.Add(time.Hour)); d != 0 {
		t.Fatalf("expected clamped zero duration for skewed EndedAt, got %v", d)
	}
}
