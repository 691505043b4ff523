package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/auth"
	"github.com/dulha-dulhan/matrimony/internal/config"
)

// Service is the interface for a handler group mounted below the api prefix.
// authn guards the admin routes of the group.
type Service interface {
	Init(router fiber.Router, cfg *config.Config, db *gorm.DB, authn auth.Authenticator) error
}
