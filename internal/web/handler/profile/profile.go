// Package profile serves the profile registration and moderation endpoints.
package profile

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/config"
	profiledb "github.com/dulha-dulhan/matrimony/internal/db/controller/profile"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
	"github.com/dulha-dulhan/matrimony/internal/notify"
	"github.com/dulha-dulhan/matrimony/internal/validation"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	authmiddleware "github.com/dulha-dulhan/matrimony/internal/web/middleware/auth"
)

const (
	// Path is the route group of the profile endpoints.
	Path = "/profiles"

	imagePath = handler.IDPath + "/image"
)

// Notifier wakes the outbox worker after a registration committed.
type Notifier interface {
	Notify()
}

// Service is the profile handler service.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	outbox Notifier
}

// Handler is the profile handler.
var Handler = Service{}

// Init registers the profile routes. outbox may be nil, the worker then
// picks new events up on its next poll.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, authn auth.Authenticator, outbox Notifier) error {
	if router == nil || cfg == nil || db == nil || authn == nil {
		return handler.ErrNilDependency
	}

	s.cfg = cfg
	s.db = db
	s.outbox = outbox

	requireAdmin := authmiddleware.RequireAdmin(authn)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, s.Create)
		r.Get(handler.IDPath, s.Get)
		r.Put(handler.IDPath, requireAdmin, s.Update)
		r.Delete(handler.IDPath, requireAdmin, s.Delete)
		r.Post(imagePath, requireAdmin, s.UploadImage)
	})

	return nil
}

// List returns the profiles matching the query filters.
func (s *Service) List(c *fiber.Ctx) error {
	f := profiledb.Filter{
		Gender: c.Query("gender"),
		Status: models.ProfileStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	var err error

	if f.IsPublic, err = queryBool(c, "isPublic"); err != nil {
		return err
	}

	if f.IsFeatured, err = queryBool(c, "isFeatured"); err != nil {
		return err
	}

	profiles, err := profiledb.List(s.db, f)
	if err != nil {
		return err
	}

	return c.JSON(profiles)
}

// Get returns a single profile.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	p, err := profiledb.Get(s.db, id)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Create stores a registration and queues its notifications.
// The response does not wait for any notification.
func (s *Service) Create(c *fiber.Ctx) error {
	in, err := validation.DecodeProfileCreate(c.Body())
	if err != nil {
		return err
	}

	p, err := profiledb.CreateWithOutbox(s.db, in, notify.KindProfileCreated)
	if err != nil {
		return err
	}

	log.Info().Uint64("profile_id", p.ID).Msg("profile registered")

	if s.outbox != nil {
		s.outbox.Notify()
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update applies an admin edit.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	changes, err := validation.DecodeProfileUpdate(c.Body())
	if err != nil {
		return err
	}

	p, err := profiledb.Update(s.db, id, changes)
	if err != nil {
		return err
	}

	log.Info().Uint64("profile_id", id).Str("admin", authmiddleware.Identity(c).Username).
		Interface("status", p.Status).Msg("profile updated")

	return c.JSON(p)
}

// Delete removes a profile.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return err
	}

	if err = profiledb.Delete(s.db, id); err != nil {
		return err
	}

	log.Info().Uint64("profile_id", id).Str("admin", authmiddleware.Identity(c).Username).Msg("profile deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage is declared for clients but has no storage behind it yet.
func (s *Service) UploadImage(_ *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotImplemented, "Image upload is not implemented")
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &validation.ValidationError{Field: key, Message: key + " must be true or false"}
	}

	return &v, nil
}
