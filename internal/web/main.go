// Package web wires the fiber app: middleware, the json api and the
// operational endpoints.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/config"
	accesslog "github.com/dulha-dulhan/matrimony/internal/logger/adapter/fiber"
	"github.com/dulha-dulhan/matrimony/internal/web/handler"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/login"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/logout"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/profile"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/service"
	"github.com/dulha-dulhan/matrimony/internal/web/handler/settings"
	"github.com/dulha-dulhan/matrimony/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"

	defaultAppName = "dulha-dulhan"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	sessions     *session.Store
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// WaitShutdown blocks until SIGINT or SIGTERM and then stops the http server.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown marks the service unhealthy, waits for load balancers to notice and
// stops the http server.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	// Graceful shutdown for reverse proxies: checkalive now fails.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service. outbox is woken after each registration and may be nil.
func New(cfg *config.Config, db *gorm.DB, sessions *session.Store, outbox profile.Notifier) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if sessions == nil {
		return nil, login.ErrNoSessionStore
	}

	appName := cfg.Title
	if appName == "" {
		appName = defaultAppName
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        appName,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			JSONEncoder:    json.Marshal,
			JSONDecoder:    json.Unmarshal,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}))

	ws := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		sessions:     sessions,
		fastShutDown: cfg.DevMode,
	}
	ws.alive.Store(true)

	app.Get(CheckAlivePath, ws.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(cfg.Webserver.APIPrefix)

	// init handlers (they register their own routes with the admin gate)
	err := errors.Join(
		login.Handler.Init(api, cfg, db, sessions),
		logout.Handler.Init(api, cfg, sessions),
		profile.Handler.Init(api, cfg, db, sessions, outbox),
		service.Handler.Init(api, cfg, db, sessions),
		settings.Handler.Init(api, cfg, db, sessions),
	)
	if err != nil {
		return nil, err
	}

	return ws, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}
