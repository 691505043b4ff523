// Package login provides HTTP handlers for admin sign in.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidCredentials is returned when the provided username and/or password
	// are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoSessionStore is returned by Init without a session store.
	ErrNoSessionStore = errors.New("session store is nil")
)
