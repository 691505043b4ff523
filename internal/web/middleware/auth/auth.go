package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	accesslog "github.com/dulha-dulhan/matrimony/internal/logger/adapter/fiber"
)

// LocalsIdentity is the fiber.Locals key holding the *auth.Identity of an admin request.
const LocalsIdentity = "identity"

// RequireAdmin rejects requests without an admin identity with 401.
// Nothing behind it runs for a rejected request.
func RequireAdmin(authn auth.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := authn.Authenticate(c)
		if err != nil || !id.IsAdmin() {
			log.Debug().Err(err).Str("path", c.Path()).Msg("unauthenticated admin request")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		c.Locals(LocalsIdentity, id)
		c.Locals(accesslog.LocalsUsername, id.Username)

		return c.Next()
	}
}

// Identity returns the identity stored by RequireAdmin, or nil.
func Identity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(LocalsIdentity).(*auth.Identity)

	return id
}
