package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"accounts/internal/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const inMemoryDSN = ":memory:"

// openSQLite opens a single-connection SQLite database, creating the parent directory of a file DSN.
func openSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = inMemoryDSN
	}

	if !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		if dir := filepath.Dir(dsn); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "failed to create sqlite directory")
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	// SQLite serializes writers; an in-memory database also lives on one connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
