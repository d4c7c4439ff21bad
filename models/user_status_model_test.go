package models

import (
	"testing"
	"time"
)

func TestOnlineWithinTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	status := UserStatus{IsOnline: true, LastSeen: now.Add(-time.Minute)}

	if !status.Online(now) {
		t.Fatalf("expected counselor to be online within TTL")
	}
}

func TestOnlineExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	status := UserStatus{IsOnline: true, LastSeen: now.Add(-PresenceTTL - time.Second)}

	if status.Online(now) {
		t.Fatalf("expected counselor to read offline after TTL lapsed")
	}
}

func TestExplicitOfflineWins(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	status := UserStatus{IsOnline: true, ExplicitOffline: true, LastSeen: now}

	if status.Online(now) {
		t.Fatalf("fresh heartbeat must not override explicit offline")
	}
}
