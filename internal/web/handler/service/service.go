// Package service serves the list of offerings shown on the public site.
package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/config"
	servicedb "github.com/dulha-dulhan/matrimony/internal/db/controller/service"
	"github.com/dulha-dulhan/matrimony/internal/validation"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	authmiddleware "github.com/dulha-dulhan/matrimony/internal/web/middleware/auth"
)

// Path is the route group of the service endpoints.
const Path = "/services"

// Service is the services handler service.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the services handler.
var Handler = Service{}

// Init registers the service routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, authn auth.Authenticator) error {
	if router == nil || cfg == nil || db == nil || authn == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.db = db

	requireAdmin := authmiddleware.RequireAdmin(authn)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, requireAdmin, s.Create)
		r.Put(handler.IDPath, requireAdmin, s.Update)
		r.Delete(handler.IDPath, requireAdmin, s.Delete)
	})

	return nil
}

// List returns all services.
func (s *Service) List(c *fiber.Ctx) error {
	services, err := servicedb.List(s.db)
	if err != nil {
		return err
	}

	return c.JSON(services)
}

// Create adds a service.
func (s *Service) Create(c *fiber.Ctx) error {
	in, err := validation.DecodeServiceCreate(c.Body())
	if err != nil {
		return err
	}

	created, err := servicedb.Create(s.db, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Update edits a service.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	changes, err := validation.DecodeServiceUpdate(c.Body())
	if err != nil {
		return err
	}

	updated, err := servicedb.Update(s.db, id, changes)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Delete removes a service.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if err = servicedb.Delete(s.db, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
