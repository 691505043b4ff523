// Package daemon assembles and runs the application: database, seed data,
// session storage, notification worker and web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/db"
	"github.com/dulha-dulhan/matrimony/internal/db/dsn"
	"github.com/dulha-dulhan/matrimony/internal/notify"
	"github.com/dulha-dulhan/matrimony/internal/outbox"
	"github.com/dulha-dulhan/matrimony/internal/web"
	"github.com/dulha-dulhan/matrimony/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	worker     *outbox.Worker
	webService *web.Service
}

// New opens the database, seeds it and builds the services.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = Seed(cfg, gdb); err != nil {
		return nil, err
	}

	storage := sessionStorage(cfg)

	sessions := session.New(storage, session.Options{
		Expiry:   cfg.Webserver.Session.ExpiryTime,
		SameSite: cfg.Webserver.CookieSameSite,
		Secure:   !cfg.DevMode,
	})

	worker := outbox.New(gdb, notify.Handlers(gdb, notify.NewDispatcher()), outbox.Options{
		Workers:      cfg.Notify.Workers,
		PollInterval: cfg.Notify.PollInterval,
		BatchSize:    cfg.Notify.BatchSize,
	})

	ws, err := web.New(cfg, gdb, sessions, worker)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		storage:    storage,
		worker:     worker,
		webService: ws,
	}, nil
}

// Start runs the worker and the web service until a shutdown signal arrives.
func (d *Daemon) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if n, err := d.worker.FailInterrupted(ctx); err != nil {
		log.Error().Err(err).Msg("failed to check interrupted outbox events")
	} else if n > 0 {
		log.Warn().Int64("events", n).Msg("outbox events interrupted by the previous run marked failed")
	}

	d.worker.Start(ctx)
	// deliver pending events left over from the previous run
	d.worker.Notify()

	listenErr := make(chan error, 1)

	go func() {
		listenErr <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	shutdown := make(chan struct{})

	go func() {
		d.webService.WaitShutdown()
		close(shutdown)
	}()

	var err error

	select {
	case err = <-listenErr:
		log.Error().Err(err).Msg("web service stopped")
	case <-shutdown:
		err = <-listenErr
	}

	d.stop()

	return err
}

// stop lets in-flight notifications finish and releases the connections.
func (d *Daemon) stop() {
	d.worker.Stop()

	if n, err := d.worker.ProcessPending(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to drain outbox")
	} else if n > 0 {
		log.Info().Int("events", n).Msg("outbox drained")
	}

	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info().Msg("good bye")
}

// sessionStorage keeps sessions in the application database when it is mysql
// or postgres. sqlite deployments keep them in memory.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}
