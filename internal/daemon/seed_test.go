package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/service"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/settings"
	"github.com/dulha-dulhan/matrimony/internal/db/controller/user"
	"github.com/dulha-dulhan/matrimony/internal/db/dbtest"
	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

func TestSeed(t *testing.T) {
	db := dbtest.New(t)
	cfg := &config.Config{Admin: config.Admin{Username: "admin", Password: "changeme"}}

	require.NoError(t, Seed(cfg, db))
	require.NoError(t, Seed(cfg, db))

	services, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Personal Matchmaking", services[0].Title)
	assert.Equal(t, "Heart", services[0].Icon)
	assert.Equal(t, "Privacy Protection", services[1].Title)
	assert.Equal(t, "Shield", services[1].Icon)

	n, err := user.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	admin, err := user.GetByUsername(db, "admin")
	require.NoError(t, err)
	assert.True(t, admin.VerifyPassword("changeme"))
}

func TestSeedKeepsExistingServices(t *testing.T) {
	db := dbtest.New(t)

	_, err := service.Create(db, &models.Service{Title: "Custom", Description: "Kept.", Icon: "Star"})
	require.NoError(t, err)

	require.NoError(t, Seed(&config.Config{}, db))

	services, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Custom", services[0].Title)

	n, err := user.Count(db)
	require.NoError(t, err)
	assert.Zero(t, n, "no admin configured")
}

func TestSeedDemo(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, SeedDemo(db))
	require.NoError(t, SeedDemo(db))

	s, err := settings.Get(db)
	require.NoError(t, err)
	assert.Equal(t, "919876543210", s.WhatsappNumber)
	assert.Empty(t, s.SMTPPass)

	var profiles []models.Profile
	require.NoError(t, db.Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.True(t, profiles[0].IsFeaturedOnHome)

	services, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, services, len(DemoServices), "added once")

	for i, want := range DemoServices {
		assert.Equal(t, want.Title, services[i].Title)
		assert.Equal(t, want.Icon, services[i].Icon)
	}
}

func TestSeedDemoAfterSeed(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, Seed(&config.Config{}, db))
	require.NoError(t, SeedDemo(db))

	services, err := service.List(db)
	require.NoError(t, err)
	require.Len(t, services, len(DefaultServices)+len(DemoServices))
	assert.Equal(t, "Personal Matchmaking", services[0].Title)
	assert.Equal(t, "UserHeart", services[len(services)-1].Icon)
}

func TestSessionStorageDefaultsToMemory(t *testing.T) {
	assert.Nil(t, sessionStorage(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite}}))
}
