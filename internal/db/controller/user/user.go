// Package user provides access to admin accounts.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

var (
	// ErrUserNotFound is returned when the account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameEmpty is returned when creating an account without a username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrPasswordEmpty is returned when creating an account without a password.
	ErrPasswordEmpty = errors.New("password cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByUsername retrieves an account by its login name.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User

	result := db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// GetByID retrieves an account by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User

	result := db.First(&u, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// Count returns the number of accounts.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var n int64

	result := db.Model(&models.User{}).Count(&n)
	if result.Error != nil {
		return 0, result.Error
	}

	return n, nil
}

// Create stores an active account with the password hashed.
func Create(db *gorm.DB, username, password string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	if password == "" {
		return nil, ErrPasswordEmpty
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Username: username, Password: hash, Active: true}

	result := db.Create(u)
	if result.Error != nil {
		return nil, result.Error
	}

	return u, nil
}
