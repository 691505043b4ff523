// Package gorm bridges gorm's logger interface into zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	defaultLevel         = gormlogger.Warn
)

// ErrInvalidLevel is returned for an unknown gorm log level name.
var ErrInvalidLevel = errors.New("invalid gorm log level")

// Logger writes gorm messages and query traces with zerolog.
type Logger struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
	Level                     gormlogger.LogLevel

	zl *zerolog.Logger
}

// New returns a gorm logger for the given level name (silent, error, warn, info).
// An empty name selects warn.
func New(level string) (*Logger, error) {
	lvl, err := ParseLevel(level)

	return &Logger{
		SlowThreshold:             defaultSlowThreshold,
		IgnoreRecordNotFoundError: true,
		Level:                     lvl,
	}, err
}

// ParseLevel maps a level name to a gorm log level.
func ParseLevel(value string) (gormlogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return defaultLevel, nil
	case "silent":
		return gormlogger.Silent, nil
	case "error":
		return gormlogger.Error, nil
	case "warn":
		return gormlogger.Warn, nil
	case "info":
		return gormlogger.Info, nil
	default:
		return defaultLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, value)
	}
}

// LogMode implements gormlogger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.Level = level

	return &clone
}

// Info implements gormlogger.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Info {
		l.logger().Info().Msgf(msg, data...)
	}
}

// Warn implements gormlogger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Warn {
		l.logger().Warn().Msgf(msg, data...)
	}
}

// Error implements gormlogger.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Error {
		l.logger().Error().Msgf(msg, data...)
	}
}

// Trace implements gormlogger.Interface.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.Level >= gormlogger.Error:
		if l.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound) {
			return
		}

		sql, rows := fc()
		l.logger().Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msg("gorm query error")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger().Warn().Dur("elapsed", elapsed).Dur("threshold", l.SlowThreshold).Int64("rows", rows).
			Str("sql", sql).Msg("gorm slow query")
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.logger().Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm query")
	}
}

// logger resolves the global zerolog logger lazily so logger.Init may run after New.
func (l *Logger) logger() *zerolog.Logger {
	if l.zl != nil {
		return l.zl
	}

	return &log.Logger
}

// WithLogger returns a copy writing to zl instead of the global logger.
func (l *Logger) WithLogger(zl zerolog.Logger) *Logger {
	clone := *l
	clone.zl = &zl

	return &clone
}
