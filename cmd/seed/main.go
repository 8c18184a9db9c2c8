package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"beingiitian/internal/config"
	"beingiitian/internal/db"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
)

const (
	adminEmail    = "admin@beingiitian.com"
	adminPassword = "Admin@12345"
)

var adminPermissions = []string{
	"ALL",
	"MANAGE_USERS",
	"MANAGE_COURSES",
	"MANAGE_CONTENT",
	"VIEW_ANALYTICS",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.MentorProfile{},
		&model.AdminProfile{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if existing, err := userRepo.FindByEmail(ctx, adminEmail); err == nil && existing != nil {
		log.Printf("Admin user already exists: %s", existing.Email)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check admin user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	gender := model.GenderMale
	admin := &model.User{
		Email:         adminEmail,
		Phone:         "+919876543210",
		PasswordHash:  string(hashed),
		FullName:      "Super Admin",
		Role:          model.RoleAdmin,
		DateOfBirth:   &dob,
		Gender:        &gender,
		EmailVerified: true,
		PhoneVerified: true,
		AdminProfile: &model.AdminProfile{
			Department:  "System Administration",
			Permissions: adminPermissions,
		},
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s", admin.Email)
}
