package database

import (
	"log"
	"os"
	"path/filepath"
	"project/config"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init initializes the database connection.
// It uses the DSN from the application config.
// For "memory", it uses an in-memory SQLite database.
// For other DSNs, it assumes a file-based SQLite database.
func Init() (*gorm.DB, error) {
	dsn := config.AppConfig.Database.DSN
	return Open(dsn)
}

// Open opens a GORM SQLite connection for the given DSN.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the importer relies on for slug collisions.
func Open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	if dsn == "memory" || dsn == "" { // Treat empty DSN as in-memory for safety
		log.Println("INFO: [Database] Initializing in-memory SQLite database (DSN: 'memory' or empty).")
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
		if err != nil {
			log.Printf("ERROR: [Database] Failed to open in-memory SQLite database: %v", err)
			return nil, err
		}
		log.Println("INFO: [Database] In-memory SQLite database initialized successfully.")
		return db, nil
	}

	// File-based SQLite: ensure the parent directory exists.
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("ERROR: [Database] Failed to create database directory %s: %v", dir, err)
			return nil, err
		}
	}

	log.Printf("INFO: [Database] Initializing file-based SQLite database at: %s", dsn)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		log.Printf("ERROR: [Database] Failed to open SQLite database at %s: %v", dsn, err)
		return nil, err
	}
	log.Printf("INFO: [Database] SQLite database at %s initialized successfully.", dsn)
	return db, nil
}
