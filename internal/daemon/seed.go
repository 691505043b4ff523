package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/service"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/settings"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/user"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

// DefaultServices are stored when the services table is empty.
var DefaultServices = []models.Service{
	{Title: "Personal Matchmaking", Description: "Get hand-picked matches.", Icon: "Heart"},
	{Title: "Privacy Protection", Description: "You control your visibility.", Icon: "Shield"},
}

// DemoServices are added by SeedDemo unless a service with the same title exists.
var DemoServices = []models.Service{
	{
		Title:       "Verified Profiles",
		Description: "Every profile is manually verified by our team for authenticity.",
		Icon:        "ShieldCheck",
	},
	{
		Title:       "Privacy Control",
		Description: "You decide who sees your photos and contact details.",
		Icon:        "Lock",
	},
	{
		Title:       "Personal Matchmaker",
		Description: "Get assistance from our experienced matchmakers to find the one.",
		Icon:        "UserHeart",
	},
}

// Seed stores the default services and the initial admin account when their
// tables are empty. Running it again changes nothing.
func Seed(cfg *config.Config, db *gorm.DB) error {
	n, err := service.Count(db)
	if err != nil {
		return errors.Wrap(err, "failed to count services")
	}

	if n == 0 {
		for _, s := range DefaultServices {
			if _, err = service.Create(db, &s); err != nil {
				return errors.Wrapf(err, "failed to seed service %q", s.Title)
			}
		}

		log.Info().Int("services", len(DefaultServices)).Msg("seeded default services")
	}

	n, err = user.Count(db)
	if err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if n == 0 && cfg.Admin.Username != "" {
		if _, err = user.Create(db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return errors.Wrap(err, "failed to seed admin account")
		}

		log.Warn().Str("username", cfg.Admin.Username).Msg("created initial admin account, change its password")
	}

	return nil
}

// SeedDemo fills the database with sample settings, the demo services and,
// when no profile exists, a featured profile for local development.
func SeedDemo(db *gorm.DB) error {
	_, err := settings.Update(db, map[string]interface{}{
		"whatsapp_number":  "919876543210",
		"whatsapp_api_key": "simulated_key",
		"smtp_host":        "smtp.example.com",
		"smtp_port":        models.DefaultSMTPPort,
		"smtp_user":        "admin@dulha-dulhan.com",
		"admin_email":      "admin@dulha-dulhan.com",
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed settings")
	}

	if err = seedDemoServices(db); err != nil {
		return err
	}

	var n int64
	if err = db.Model(&models.Profile{}).Count(&n).Error; err != nil {
		return errors.Wrap(err, "failed to count profiles")
	}

	if n > 0 {
		return nil
	}

	sample := &models.Profile{
		Name:             "Aisha Sharma",
		Gender:           "Female",
		Age:              26,
		City:             "Mumbai",
		Community:        "Brahmin",
		Phone:            "919000000000",
		Email:            "aisha@example.com",
		Bio:              "Looking for a compatible partner who values tradition and growth.",
		Status:           models.StatusNew,
		IsPublic:         true,
		IsFeaturedOnHome: true,
	}

	if err = db.Create(sample).Error; err != nil {
		return errors.Wrap(err, "failed to seed sample profile")
	}

	return nil
}

func seedDemoServices(db *gorm.DB) error {
	for _, s := range DemoServices {
		var n int64
		if err := db.Model(&models.Service{}).Where("title = ?", s.Title).Count(&n).Error; err != nil {
			return errors.Wrapf(err, "failed to look up service %q", s.Title)
		}

		if n > 0 {
			continue
		}

		if _, err := service.Create(db, &s); err != nil {
			return errors.Wrapf(err, "failed to seed service %q", s.Title)
		}
	}

	return nil
}
