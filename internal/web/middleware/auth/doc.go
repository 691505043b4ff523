// Package auth provides the admin gate of the JSON api.
//
// RequireAdmin asks an auth.Authenticator for the identity of the request. A
// request without one is answered with 401 and {"message": "Unauthorized"}
// before any handler or database call runs. Accepted requests carry the
// identity in fiber.Locals and the username in the access log.
//
// Usage:
//
//	router.Put("/profiles/:id", authmiddleware.RequireAdmin(sessions), handler)
package auth
