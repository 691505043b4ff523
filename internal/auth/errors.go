package auth

import "errors"

var (
	// ErrUnauthenticated is returned when a request carries no valid admin identity.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when no account has the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrDBNil is returned when the provider has no database.
	ErrDBNil = errors.New("database connection is nil")
)
