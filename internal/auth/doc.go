// Package auth identifies back office admins.
//
// Handlers never inspect cookies or tokens themselves. They depend on the
// Authenticator capability, which turns a request into an Identity or fails
// with ErrUnauthenticated. The session package provides the cookie backed
// implementation; tests substitute their own.
//
// LocalProvider checks a username and password against the admin accounts
// stored in the database. Passwords are Argon2id hashes.
//
// Example usage:
//
//	provider := auth.NewLocalProvider(db)
//	identity, err := provider.Authenticate(username, password)
//
//	// protect a route
//	router.Put("/profiles/:id", authmiddleware.RequireAdmin(authn), handler)
package auth
