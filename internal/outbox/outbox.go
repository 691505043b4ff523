// Package outbox records side effects in the same transaction as the write that
// causes them and delivers them asynchronously with a small worker pool.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dulha-dulhan/matrimony/internal/db/models"
)

const (
	defaultWorkers      = 2
	defaultPollInterval = 2 * time.Second
	defaultBatchSize    = 10
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNoHandler is recorded on events whose kind has no registered handler.
	ErrNoHandler = errors.New("no handler registered for event kind")
	// ErrInterrupted is recorded on events a previous run claimed but never finished.
	ErrInterrupted = errors.New("delivery interrupted before completion")
)

// Handler delivers one event. A returned error marks the event failed.
type Handler func(ctx context.Context, ev *models.OutboxEvent) error

// Enqueue stores a pending event with payload encoded as JSON.
// Pass the transaction of the write the event belongs to.
func Enqueue(tx *gorm.DB, kind string, payload interface{}) (*models.OutboxEvent, error) {
	if tx == nil {
		return nil, ErrDBNil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	ev := &models.OutboxEvent{
		Kind:    kind,
		Payload: b,
		Status:  models.OutboxPending,
	}

	if err = tx.Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to enqueue %s event: %w", kind, err)
	}

	return ev, nil
}

// Options tune the worker pool. Zero values select defaults.
type Options struct {
	Workers      int
	PollInterval time.Duration
	BatchSize    int
}

// Worker polls the outbox table and runs the handler registered for each event kind.
type Worker struct {
	db       *gorm.DB
	handlers map[string]Handler
	opts     Options

	wake chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// New returns a worker pool. Call Start to launch it.
func New(db *gorm.DB, handlers map[string]Handler, opts Options) *Worker {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	if handlers == nil {
		handlers = map[string]Handler{}
	}

	return &Worker{
		db:       db,
		handlers: handlers,
		opts:     opts,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// FailInterrupted marks events left in processing by a previous run as failed.
// Their delivery state is unknown, so they are not retried. Call it before
// Start, while no worker of this process holds a claim.
func (w *Worker) FailInterrupted(ctx context.Context) (int64, error) {
	if w.db == nil {
		return 0, ErrDBNil
	}

	result := w.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("status = ?", models.OutboxProcessing).
		Updates(map[string]interface{}{
			"status":     models.OutboxFailed,
			"last_error": ErrInterrupted.Error(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to fail interrupted events: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Start launches the worker goroutines.
func (w *Worker) Start(ctx context.Context) {
	for i := range w.opts.Workers {
		w.wg.Add(1)

		go w.run(ctx, i)
	}
}

// Stop signals the workers to exit and waits for them. Safe to call more than once.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// Notify wakes one idle worker without blocking.
func (w *Worker) Notify() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			log.Debug().Int("worker", id).Msg("outbox worker stopping")
			return
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("context canceled, outbox worker exiting")
			return
		case <-w.wake:
		case <-ticker.C:
		}

		if _, err := w.ProcessPending(ctx); err != nil {
			log.Error().Err(err).Int("worker", id).Msg("failed to process outbox")
		}
	}
}

// ProcessPending delivers up to one batch of pending events and returns how many
// this call claimed.
func (w *Worker) ProcessPending(ctx context.Context) (int, error) {
	if w.db == nil {
		return 0, ErrDBNil
	}

	var ids []uint64

	err := w.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(w.opts.BatchSize).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list pending events: %w", err)
	}

	processed := 0

	for _, id := range ids {
		ev, ok, err := w.claim(ctx, id)
		if err != nil {
			return processed, err
		}

		if !ok {
			// another worker got it first
			continue
		}

		w.deliver(ctx, ev)

		processed++
	}

	return processed, nil
}

func (w *Worker) claim(ctx context.Context, id uint64) (*models.OutboxEvent, bool, error) {
	result := w.db.WithContext(ctx).Model(&models.OutboxEvent{}).
		Where("id = ? AND status = ?", id, models.OutboxPending).
		Updates(map[string]interface{}{
			"status":   models.OutboxProcessing,
			"attempts": gorm.Expr("attempts + 1"),
		})
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to claim event %d: %w", id, result.Error)
	}

	if result.RowsAffected != 1 {
		return nil, false, nil
	}

	var ev models.OutboxEvent
	if err := w.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		return nil, false, fmt.Errorf("failed to load event %d: %w", id, err)
	}

	return &ev, true, nil
}

func (w *Worker) deliver(ctx context.Context, ev *models.OutboxEvent) {
	var err error

	if h, ok := w.handlers[ev.Kind]; ok {
		err = h(ctx, ev)
	} else {
		err = ErrNoHandler
	}

	now := time.Now()
	changes := map[string]interface{}{
		"status":       models.OutboxDone,
		"processed_at": &now,
	}

	if err != nil {
		log.Warn().Err(err).Uint64("event", ev.ID).Str("kind", ev.Kind).Msg("outbox event failed")

		changes["status"] = models.OutboxFailed
		changes["last_error"] = err.Error()
	}

	// the claim is ours, a cancelled request context must not leave it in processing
	if upErr := w.db.WithContext(context.WithoutCancel(ctx)).Model(ev).Updates(changes).Error; upErr != nil {
		log.Error().Err(upErr).Uint64("event", ev.ID).Msg("failed to record outbox result")
	}
}
