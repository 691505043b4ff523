package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// RoleAdmin is the only role of the back office.
const RoleAdmin = "admin"

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID   uint64 `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity may use the back office.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.UserID > 0 && i.Role == RoleAdmin
}

// IdentityFromUser builds the identity of an admin account.
func IdentityFromUser(u *models.User) *Identity {
	return &Identity{UserID: u.ID, Username: u.Username, Role: RoleAdmin}
}

// Authenticator resolves the identity of a request.
// Implementations return ErrUnauthenticated when there is none.
type Authenticator interface {
	Authenticate(c *fiber.Ctx) (*Identity, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(c *fiber.Ctx) (*Identity, error)

// Authenticate implements Authenticator.
func (f AuthenticatorFunc) Authenticate(c *fiber.Ctx) (*Identity, error) {
	return f(c)
}
