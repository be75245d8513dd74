package main

import (
	"log"
	"os"

	"legal-consult-be/internal/model"
	"legal-consult-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM cannot create itself.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	models := []interface{}{
		&model.User{},
		&model.Lawyer{},
		&model.Schedule{},
		&model.Booking{},
		&model.Refund{},
		&model.ChatConversation{},
		&model.ChatMessage{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	// The slot guard lives in the database. AutoMigrate builds the partial
	// unique index from the Booking tags, this re-asserts it for older
	// schemas that predate the where clause.
	slotIndexSQL := `CREATE UNIQUE INDEX IF NOT EXISTS uniq_lawyer_slot
		ON bookings (lawyer_id, date, slot_start, slot_end)
		WHERE status <> 'Cancelled';`
	if err := db.Exec(slotIndexSQL).Error; err != nil {
		log.Printf("Warn: Failed to assert slot index: %v", err)
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
