// Package settings serves the notification settings to admins.
package settings

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/config"
	settingsdb "github.com/dulha-dulhan/matrimony/internal/db/controller/settings"
	"github.com/dulha-dulhan/matrimony/internal/validation"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	authmiddleware "github.com/dulha-dulhan/matrimony/internal/web/middleware/auth"
)

// Path is the route of the settings singleton.
const Path = "/settings"

// Service is the settings handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the settings handler.
var Handler = Service{}

// Init registers the settings routes. Both are admin only.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, authn auth.Authenticator) error {
	if router == nil || cfg == nil || db == nil || authn == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.db = db

	router.Route(Path, func(r fiber.Router) {
		r.Use(authmiddleware.RequireAdmin(authn))
		r.Get(handler.RootPath, s.Get)
		r.Put(handler.RootPath, s.Put)
	})

	return nil
}

// Get returns the settings, creating the defaults on first access.
func (s *Service) Get(c *fiber.Ctx) error {
	current, err := settingsdb.Get(s.db)
	if err != nil {
		return err
	}

	return c.JSON(current)
}

// Put applies a partial edit.
func (s *Service) Put(c *fiber.Ctx) error {
	changes, err := validation.DecodeSettingsUpdate(c.Body())
	if err != nil {
		return err
	}

	updated, err := settingsdb.Update(s.db, changes)
	if err != nil {
		return err
	}

	log.Info().Str("admin", authmiddleware.Identity(c).Username).Msg("settings updated")

	return c.JSON(updated)
}
