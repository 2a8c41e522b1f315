// Package logger configures the global zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const RequestIDFieldKey = "req-id"

// SetWriter configures a log writer for the global logger.
func SetWriter(w io.Writer) {
	log.Logger = log.Output(w)
}

// UseJSONLogging writes timestamped JSON lines to stderr.
func UseJSONLogging() {
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// CliLogger writes human-readable lines to stderr.
func CliLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// Set changes the global level: trace, debug, info, warn or error.
func Set(level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// RequestScopedContext returns a context carrying a logger tagged with reqID.
// An empty reqID is replaced with a generated one, prefixed by "_".
func RequestScopedContext(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		reqID = "_" + uuid.New().String()
	}
	l := log.With().Str(RequestIDFieldKey, reqID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the request logger in ctx, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := log.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
