// Package settings provides access to the settings singleton row.
package settings

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get returns the settings row, inserting the defaults on first access.
// Concurrent first calls insert at most one row.
func Get(db *gorm.DB) (*models.Settings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Settings

	result := db.First(&s, models.SettingsID)
	if result.Error == nil {
		return &s, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", result.Error)
	}

	defaults := models.DefaultSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	// read back, another request may have won the insert
	if err := db.First(&s, models.SettingsID).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return &s, nil
}

// Update applies changes (column name to value) to the settings row and returns it.
func Update(db *gorm.DB, changes map[string]interface{}) (*models.Settings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	s, err := Get(db)
	if err != nil {
		return nil, err
	}

	delete(changes, "id")

	if len(changes) > 0 {
		if err = db.Model(s).Updates(changes).Error; err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return Get(db)
}
