package database

import (
	"log"

	"github.com/gdg-garage/contrib-role-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the sqlite database at path and migrates the verification
// table. Path may be ":memory:".
func Connect(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// sqlite allows a single writer, and every ":memory:" connection is a
	// separate database.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Verification{})
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
