// Package service provides CRUD operations for the services shown on the public site.
package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

var (
	// ErrServiceNotFound is returned when no service has the requested id.
	ErrServiceNotFound = errors.New("service not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List returns all services in insertion order.
func List(db *gorm.DB) ([]models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	services := make([]models.Service, 0)

	result := db.Order("id ASC").Find(&services)
	if result.Error != nil {
		return nil, result.Error
	}

	return services, nil
}

// Get retrieves a service by its ID.
func Get(db *gorm.DB, id uint64) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.Service

	result := db.First(&s, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}

		return nil, result.Error
	}

	return &s, nil
}

// Count returns the number of stored services.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64

	result := db.Model(&models.Service{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}

// Create inserts s and assigns its ID.
func Create(db *gorm.DB, s *models.Service) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	s.ID = 0

	result := db.Create(s)
	if result.Error != nil {
		return nil, result.Error
	}

	return s, nil
}

// Update applies changes (column name to value) to the service with the given id.
func Update(db *gorm.DB, id uint64, changes map[string]interface{}) (*models.Service, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	s, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	delete(changes, "id")

	if len(changes) == 0 {
		return s, nil
	}

	result := db.Model(s).Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, id)
}

// Delete removes the service with the given id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Service{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}
