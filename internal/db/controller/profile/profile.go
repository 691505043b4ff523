// Package profile provides persistence operations for matchmaking profiles.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
	"github.com/dulha-dulhan/matrimony/internal/outbox"
)

var (
	// ErrProfileNotFound is returned when no profile has the requested id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Filter narrows a profile listing. Zero values mean "no constraint".
type Filter struct {
	Gender     string
	Status     models.ProfileStatus
	IsPublic   *bool
	IsFeatured *bool
	// Search matches name, city or community case-insensitively.
	Search string
}

// List returns profiles matching f in insertion order.
func List(db *gorm.DB, f Filter) ([]models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Model(&models.Profile{})

	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	if f.IsPublic != nil {
		q = q.Where("is_public = ?", *f.IsPublic)
	}

	if f.IsFeatured != nil {
		q = q.Where("is_featured_on_home = ?", *f.IsFeatured)
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(community) LIKE ?", like, like, like)
	}

	profiles := make([]models.Profile, 0)
	if err := q.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// Get returns the profile with the given id.
func Get(db *gorm.DB, id uint64) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile

	result := db.First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// GetByUserID returns the profile linked to an external account.
func GetByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Profile

	result := db.Where("user_id = ?", userID).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}

		return nil, result.Error
	}

	return &p, nil
}

// Create inserts p. The database assigns ID and CreatedAt.
func Create(db *gorm.DB, p *models.Profile) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p.ID = 0

	if p.Status == "" {
		p.Status = models.StatusNew
	}

	if err := db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return p, nil
}

// CreateWithOutbox inserts p and an outbox event of the given kind carrying
// the stored profile. Both rows commit together or not at all.
func CreateWithOutbox(db *gorm.DB, p *models.Profile, kind string) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Create(tx, p); err != nil {
			return err
		}

		_, err := outbox.Enqueue(tx, kind, p)

		return err
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Update applies changes (column name to value) to the profile with the given id.
// The id and created_at columns are never written.
func Update(db *gorm.DB, id uint64, changes map[string]interface{}) (*models.Profile, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	delete(changes, "id")
	delete(changes, "created_at")

	var p models.Profile

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}

			return err
		}

		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&p).Updates(changes).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		return tx.First(&p, id).Error
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Delete removes the profile with the given id.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Profile{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
