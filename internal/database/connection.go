package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tastycorner/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:///"

func Initialize(databaseURI, logLevel string) (*gorm.DB, error) {
	// Configure GORM
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	}

	dialector, err := dialectorFor(databaseURI)
	if err != nil {
		return nil, err
	}

	// Connect to database
	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connected (%s)", db.Dialector.Name())
	return db, nil
}

// Models lists every table the application owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Employee{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.Attendance{},
		&models.Wishlist{},
	}
}

func dialectorFor(uri string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return postgres.Open(uri), nil
	case strings.HasPrefix(uri, sqlitePrefix):
		path := strings.TrimPrefix(uri, sqlitePrefix)
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
		return sqlite.Open(sqliteDSN(path)), nil
	case strings.HasSuffix(uri, ".db"), strings.HasSuffix(uri, ".sqlite"):
		return sqlite.Open(sqliteDSN(uri)), nil
	}
	return nil, fmt.Errorf("unsupported database URI %q", uri)
}

// sqliteDSN turns on foreign keys for every pooled connection, not just the first.
func sqliteDSN(path string) string {
	return path + "?_foreign_keys=on"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
