package main

import (
	"errors"
	"log"
	"os"
	"time"

	"funeral-docs-be/internal/config"
	"funeral-docs-be/internal/entity"
	"funeral-docs-be/internal/model"
	"funeral-docs-be/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if cfg.Database.Driver != database.DriverSQLite {
		log.Println("Step 1: Setting up extensions...")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
			log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Optional bootstrap admin, idempotent on email.
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		log.Println("Step 3: Ensuring admin account...")
		if err := ensureAdmin(db, email, os.Getenv("ADMIN_PASSWORD")); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}

func ensureAdmin(db *gorm.DB, email, password string) error {
	var existing model.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Update("role", string(entity.UserRoleAdmin)).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if len(password) < 8 {
		return errors.New("ADMIN_PASSWORD must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&model.User{
		Id:                 uuid.New(),
		Email:              email,
		PasswordHash:       string(hash),
		FullName:           "Administrator",
		Role:               string(entity.UserRoleAdmin),
		BillingPeriodStart: time.Now(),
	}).Error
}
