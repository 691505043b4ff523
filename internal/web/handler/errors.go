package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/profile"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/service"
	"github.com/dulha-dulhan/matrimony/internal/validation"
)

// ErrNilDependency is returned by Init when a required dependency is missing.
var ErrNilDependency = errors.New(ErrNilACDFatalLogMsg)

// Message is the body of every error response.
type Message struct {
	Message string `json:"message"`
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, &validation.ValidationError{Field: "id", Message: "id must be a positive integer"}
	}

	return id, nil
}

// ErrorHandler maps errors returned by handlers to JSON responses.
// Unexpected errors are logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		ve *validation.ValidationError
		fe *fiber.Error
	)

	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(ve)
	case errors.Is(err, auth.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(Message{Message: "Unauthorized"})
	case errors.Is(err, profile.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(Message{Message: "Profile not found"})
	case errors.Is(err, service.ErrServiceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(Message{Message: "Service not found"})
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(Message{Message: fe.Message})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

	return c.Status(fiber.StatusInternalServerError).JSON(Message{Message: "Internal Server Error"})
}
