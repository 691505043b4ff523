// Package logout ends admin sessions.
package logout

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	"github.com/dulha-dulhan/matrimony/internal/web/session"
)

// Path is the path of the logout endpoint.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	cfg      *config.Config
	sessions *session.Store
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(router fiber.Router, cfg *config.Config, sessions *session.Store) error {
	if router == nil || cfg == nil || sessions == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.sessions = sessions

	// no auth gate, logging out without a session is a no-op
	router.Post(Path, s.Logout)

	return nil
}

// Logout deletes the session and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	s.sessions.Logout(c)

	return c.SendStatus(fiber.StatusNoContent)
}
