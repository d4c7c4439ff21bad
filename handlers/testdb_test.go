package handlers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/deftec/counseling_platform/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a throwaway sqlite database with the production schema
// shape. The tables are created by hand because the migrations use
// Postgres defaults; the constraints that matter to the handlers (the
// counselor slot index, the presence row per user) are kept.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "counseling.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ddl := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			service_number TEXT,
			rank TEXT,
			school TEXT,
			class_name TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE specializations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE counselors (
			user_id TEXT PRIMARY KEY,
			specialization_id TEXT NOT NULL,
			phone TEXT,
			bio TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE appointments (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL,
			counselor_id TEXT NOT NULL,
			specialization_id TEXT NOT NULL,
			date DATETIME NOT NULL,
			time TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (counselor_id, date, time)
		)`,
		`CREATE TABLE chat_messages (
			id TEXT PRIMARY KEY,
			appointment_id TEXT NOT NULL,
			sender_id TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE user_statuses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			is_online BOOLEAN NOT NULL DEFAULT FALSE,
			explicit_offline BOOLEAN NOT NULL DEFAULT FALSE,
			last_seen DATETIME NOT NULL,
			updated_at DATETIME
		)`,
		`CREATE TABLE call_logs (
			id TEXT PRIMARY KEY,
			caller_id TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			call_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'ongoing',
			connected BOOLEAN NOT NULL DEFAULT FALSE,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()

	user := models.User{
		ID:         uuid.New(),
		FirstName:  "Test",
		LastName:   role,
		Email:      uuid.NewString() + "@example.com",
		Password:   "hashed",
		Role:       role,
		IsApproved: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed %s user: %v", role, err)
	}
	return user
}

func seedAppointment(t *testing.T, db *gorm.DB, studentID, counselorID uuid.UUID, day time.Time, clock string) models.Appointment {
	t.Helper()

	appointment := models.Appointment{
		ID:               uuid.New(),
		StudentID:        studentID,
		CounselorID:      counselorID,
		SpecializationID: uuid.New(),
		Date:             day,
		Time:             clock,
		Status:           models.AppointmentPending,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return appointment
}
