// Package db opens the gorm connection and owns the schema migration.
package db

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db/dsn"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
	gormadapter "github.com/dulha-dulhan/matrimony/internal/logger/adapter/gorm"
)

const (
	sqliteMemory = ":memory:"
	dbDirPerm    = 0o750
)

// Models lists every table the application owns.
func Models() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.Service{},
		&models.Settings{},
		&models.User{},
		&models.OutboxEvent{},
	}
}

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormLogger, err := gormadapter.New(cfg.DB.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid db log level")
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		if err = ensureSQLiteDir(cfg.DB.Path); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(dsn.Dialector(cfg), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// one writer at a time, sqlite locks the whole file
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to access sql.DB")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// ensureSQLiteDir creates the directory of a file backed sqlite database.
func ensureSQLiteDir(path string) error {
	if path == "" || path == sqliteMemory || strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dbDirPerm); err != nil {
		return errors.Wrapf(err, "can't create database directory %s", dir)
	}

	return nil
}
