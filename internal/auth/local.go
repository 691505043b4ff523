package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/controller/user"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate checks username and password against the stored admin accounts.
func (p *LocalProvider) Authenticate(username, password string) (*Identity, error) {
	if p.db == nil {
		return nil, ErrDBNil
	}

	u, err := user.GetByUsername(p.db, username)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !u.Active {
		return nil, ErrUserAccountDisabled
	}

	if !u.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return IdentityFromUser(u), nil
}
