// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EnvConfigJSON is the environment variable holding a JSON document merged over the TOML config.
const EnvConfigJSON = "DULHA_DULHAN_CONFIG_JSON"

// MaskedSecret replaces passwords in printed configs.
const MaskedSecret = "********"

const (
	defaultShutDownTime   = 5
	defaultAPIPrefix      = "/api"
	defaultSameSite       = "Lax"
	defaultSessionExpiry  = 12 * time.Hour
	defaultNotifyWorkers  = 2
	defaultNotifyInterval = 2 * time.Second
	defaultNotifyBatch    = 10
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
	}

	return c, nil
}

// Masked returns a copy of c with the passwords replaced by MaskedSecret.
// Empty passwords stay empty so a missing secret is still visible.
func (c Config) Masked() Config {
	if c.DB.Password != "" {
		c.DB.Password = MaskedSecret
	}

	if c.Admin.Password != "" {
		c.Admin.Password = MaskedSecret
	}

	return c
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrapf(ErrUnsupportedGormEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
	}

	if c.Admin.Username != "" && c.Admin.Password == "" {
		return errors.Wrap(ErrEmptyAdminPassword, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.APIPrefix == "" {
		c.Webserver.APIPrefix = defaultAPIPrefix
	}

	if c.Webserver.CookieSameSite == "" {
		c.Webserver.CookieSameSite = defaultSameSite
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Notify.Workers <= 0 {
		c.Notify.Workers = defaultNotifyWorkers
	}

	if c.Notify.PollInterval <= 0 {
		c.Notify.PollInterval = defaultNotifyInterval
	}

	if c.Notify.BatchSize <= 0 {
		c.Notify.BatchSize = defaultNotifyBatch
	}

	return nil
}
