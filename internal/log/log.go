// Package log builds the process logger and carries it through the
// command context.
package log

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type ctxKey struct{}

// New creates the logger. Quiet disables output entirely and verbose
// lowers the level to debug. When w is a terminal the output is
// pretty-printed, otherwise it is line-delimited JSON.
func New(w io.Writer, verbose, quiet bool) zerolog.Logger {
	if quiet {
		return zerolog.Nop()
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the logger from the context. If none is found a
// disabled logger is returned, so library code can log unconditionally.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
