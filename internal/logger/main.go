// Package logger configures the global zerolog logger.
//
// Output goes to the console, to rolling files below Log.File.Path, or both.
// Every statement is counted per level in the log_statements_total metric.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logDirPerm = 0o750

// LevelWriter routes an event to the writer of its level.
// Debug and info share InfoWriter, error and above go to ErrorWriter.
// A nil writer drops the events of its level.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

// New builds a logger from cfg without touching the global one.
// An empty LogLevel selects info.
func New(cfg Log) (zerolog.Logger, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.LevelInfoValue
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "loglevel %q is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return zerolog.Nop(), ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return zerolog.Nop(), ErrAppNameIsEmpty
	}

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		w, err := newRollingFiles(cfg)
		if err != nil {
			return zerolog.Nop(), err
		}

		writers = append(writers, w)
	}

	zctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().Timestamp().Str("app", cfg.AppName)

	if cfg.LogEnv != "" {
		zctx = zctx.Str("env", cfg.LogEnv)
	}

	if cfg.ReportCaller {
		zctx = zctx.Caller()
	}

	// stack traces of pkg/errors only on trace level
	if level == zerolog.TraceLevel {
		zctx = zctx.Stack()
	}

	return zctx.Logger(), nil
}

// Init replaces the global logger with one built from cfg.
// With neither console nor file enabled nothing is written.
func Init(cfg Log) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	zerolog.ErrorHandler = ErrorHandler                  //nolint:reassign
	log.Logger = l

	return nil
}

// NewRollingFile creates a lumberjack backed writer below dir.
func NewRollingFile(dir string, f RollingFile) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, f.Name),
		MaxSize:    f.MaxSize,
		MaxAge:     f.MaxAge,
		MaxBackups: f.MaxBackups,
	}
}

func newRollingFiles(cfg Log) (io.Writer, error) {
	if err := os.MkdirAll(cfg.File.Path, logDirPerm); err != nil {
		return nil, errors.Wrapf(err, "can't create log directory %s", cfg.File.Path)
	}

	return &LevelWriter{
		ErrorWriter: NewRollingFile(cfg.File.Path, cfg.File.Error()),
		InfoWriter:  NewRollingFile(cfg.File.Path, cfg.File.Info()),
		TraceWriter: NewRollingFile(cfg.File.Path, cfg.File.Trace()),
		WarnWriter:  NewRollingFile(cfg.File.Path, cfg.File.Warn()),
	}, nil
}

// NewConsoleWriter writes info and debug to stdout, everything else to stderr.
// UseConsoleWriter switches from json lines to zerolog's human readable format.
func NewConsoleWriter(cfg Log) io.Writer {
	var stdout, stderr io.Writer = os.Stdout, os.Stderr

	if cfg.Console.UseConsoleWriter {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: zerolog.TimeFieldFormat}
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: stderr,
		InfoWriter:  stdout,
		TraceWriter: stderr,
		WarnWriter:  stderr,
	}
}
