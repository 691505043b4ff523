package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/validation"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	"github.com/dulha-dulhan/matrimony/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"
	// MePath returns the identity of the current session.
	MePath = "/me"
)

// Request is the login body.
type Request struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Service is the login handler service.
type Service struct {
	cfg      *config.Config
	local    *auth.LocalProvider
	sessions *session.Store
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, sessions *session.Store) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilDependency
	}

	if sessions == nil {
		return ErrNoSessionStore
	}

	s.cfg = cfg
	s.local = auth.NewLocalProvider(db)
	s.sessions = sessions

	router.Post(Path, s.Post)
	router.Get(MePath, s.Me)

	return nil
}

// Post checks the credentials, starts a session and returns the identity.
func (s *Service) Post(c *fiber.Ctx) error {
	var in Request
	if err := validation.Decode(c.Body(), &in); err != nil {
		return err
	}

	id, err := s.authenticate(in.Username, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(handler.Message{Message: "Invalid username or password"})
		}

		return err
	}

	if err = s.sessions.Login(c, id); err != nil {
		return err
	}

	log.Info().Str("username", id.Username).Msg("admin logged in")

	return c.JSON(id)
}

// Me returns the identity of the current session.
func (s *Service) Me(c *fiber.Ctx) error {
	id, err := s.sessions.Authenticate(c)
	if err != nil {
		return err
	}

	return c.JSON(id)
}

// authenticate folds every credential problem into ErrInvalidCredentials so
// the response does not reveal which part was wrong.
func (s *Service) authenticate(username, password string) (*auth.Identity, error) {
	id, err := s.local.Authenticate(username, password)

	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Warn().Err(err).Str("username", username).Msg("login rejected")

		return nil, ErrInvalidCredentials
	default:
		return nil, err
	}
}
