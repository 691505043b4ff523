package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName is not set.
	ErrAppNameIsEmpty = errors.New("log appName can not be empty")
	// ErrServiceNameIsEmpty is returned if Log.ServiceName is not set.
	ErrServiceNameIsEmpty = errors.New("log serviceName can not be empty")
)

// ErrorHandler is zerolog's fallback when a writer fails. The global logger
// can not report its own failures, so this goes straight to stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "logger: dropped event: %v\n", err)
}
