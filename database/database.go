package database

import (
	"fmt"
	"log"

	config "github.com/deftec/counseling_platform/configs"
	"github.com/deftec/counseling_platform/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Specialization{},
		&models.Counselor{},
		&models.Appointment{},
		&models.ChatMessage{},
		&models.UserStatus{},
		&models.CallLog{},
		&models.Book{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to run migrations: %v", err)
	}

	log.Println("✅ Database migrated")
}

// SeedAdmin creates the bootstrap admin account if none exists. Admins are
// approved from the start.
func SeedAdmin() {
	email := config.Config("ADMIN_EMAIL")
	password := config.Config("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	admin := models.User{
		FirstName:  "System",
		LastName:   "Admin",
		Email:      email,
		Password:   string(hashed),
		Role:       models.RoleAdmin,
		IsApproved: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Seeded admin account")
}
