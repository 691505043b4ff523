package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.NotZero(t, cfg.Webserver.Port)
	assert.NotEmpty(t, cfg.Webserver.URL)
	assert.Equal(t, "/api", cfg.Webserver.APIPrefix)
	assert.Equal(t, 12*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, 2*time.Second, cfg.Notify.PollInterval)
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080"},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: ""},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown engine",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				DB:        DB{GormEngine: "oracle"},
			},
			wantErr: ErrUnsupportedGormEngine,
		},
		{
			name: "admin without password",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
				Admin:     Admin{Username: "admin"},
			},
			wantErr: ErrEmptyAdminPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"}}

	require.NoError(t, validate(&cfg))

	assert.Equal(t, EngineSQLite, cfg.DB.GormEngine)
	assert.Equal(t, defaultShutDownTime, cfg.Webserver.ShutDownTime)
	assert.Equal(t, defaultAPIPrefix, cfg.Webserver.APIPrefix)
	assert.Equal(t, defaultSameSite, cfg.Webserver.CookieSameSite)
	assert.Equal(t, defaultSessionExpiry, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, defaultNotifyWorkers, cfg.Notify.Workers)
	assert.Equal(t, defaultNotifyInterval, cfg.Notify.PollInterval)
	assert.Equal(t, defaultNotifyBatch, cfg.Notify.BatchSize)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":"Test Override","Webserver":{"Port":9090}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
	// values not present in the override survive the merge
	assert.Equal(t, "admin", cfg.Admin.Username)
}

func TestReadConfigWithBrokenJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(projectConfigPath(t))
	require.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir() + string(filepath.Separator))
	require.Error(t, err)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, "Test"), "DumpConfig() output should contain Title")

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"Title": "Test"`)
}

func TestMasked(t *testing.T) {
	tests := []struct {
		name      string
		db, admin string
		wantDB    string
		wantAdmin string
	}{
		{name: "both set", db: "dbsecret", admin: "changeme", wantDB: MaskedSecret, wantAdmin: MaskedSecret},
		{name: "empty stays empty", admin: "changeme", wantAdmin: MaskedSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{DB: DB{Password: tt.db, User: "matrimony"}, Admin: Admin{Username: "admin", Password: tt.admin}}

			masked := cfg.Masked()
			assert.Equal(t, tt.wantDB, masked.DB.Password)
			assert.Equal(t, tt.wantAdmin, masked.Admin.Password)
			assert.Equal(t, "matrimony", masked.DB.User)
			assert.Equal(t, "admin", masked.Admin.Username)

			// the original keeps its secrets
			assert.Equal(t, tt.db, cfg.DB.Password)
			assert.Equal(t, tt.admin, cfg.Admin.Password)

			out, err := DumpConfig(&masked)
			require.NoError(t, err)
			assert.NotContains(t, out, "changeme")
			assert.NotContains(t, out, "dbsecret")
		})
	}
}
