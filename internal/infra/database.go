package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection and migrates the schema. The driver
// is picked from the DSN: a postgres:// URL selects the Postgres driver,
// anything else is treated as a local SQLite file path (the default for a
// single-register install).
func NewDatabase(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Single-writer model: one connection serializes all mutations, which is
	// also what SQLite wants.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by the test suite
// against an in-memory SQLite database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.Staff{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Expense{},
		&model.Credit{},
		&model.Payment{},
		&model.User{},
	)
}
