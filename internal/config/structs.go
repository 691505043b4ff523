package config

import (
	"time"

	"github.com/dulha-dulhan/matrimony/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Admin     Admin
	Notify    Notify
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	APIPrefix      string  // route group for the json api
	CookieSameSite string  // SameSite attribute of the session cookie
	Session        Session // session settings
}

// Admin holds the account created when no admin exists yet.
type Admin struct {
	Username string
	Password string
}

// Notify configures the outbox worker delivering notifications.
type Notify struct {
	Workers      int
	PollInterval time.Duration
	BatchSize    int
}
