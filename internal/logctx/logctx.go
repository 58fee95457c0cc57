// Package logctx provides context-based logger injection and extraction.
//
// The world aggregator never fails a whole scan over one corrupt chunk; it
// logs a warning and moves on. Callers that want those warnings attach a
// zerolog logger to the context:
//
//	ctx := logctx.WithLogger(ctx, zerolog.New(os.Stderr).With().Timestamp().Logger())
//	result, err := world.Search(ctx, paths, names)
//
// Without an attached logger the library stays silent: the default is a no-op
// logger, so library code never writes to the process streams uninvited.
package logctx

import (
	"context"

	"github.com/rs/zerolog"
)

// loggerKey is the private key type for storing loggers in context.
// Using a private type prevents collisions with other packages.
type loggerKey struct{}

// WithLogger returns a new context with the given logger attached.
// The logger can be retrieved using FromContext.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts the logger from the context. If the context is nil or
// does not contain a logger, returns a no-op logger. Never panics.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}

	return zerolog.Nop()
}

// WithStr returns a new context whose logger carries an extra string field,
// e.g. the region file currently being scanned.
func WithStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, logger)
}
