// Package logging configures log/slog and provides attribute helpers so log
// keys stay consistent across packages.
package logging

import (
	"io"
	"log/slog"
	"time"
)

// Common log attribute keys.
const (
	KeyList      = "list"
	KeyOperation = "operation"
	KeySink      = "sink"
	KeyCount     = "count"
	KeyDuration  = "duration"
	KeyError     = "error"
)

// New returns a text logger writing to w. Debug lowers the level from Warn to
// Debug so a normal CLI run stays quiet.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDefault returns logger, or slog.Default() when it is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// WithList returns a logger with the list attribute set.
func WithList(logger *slog.Logger, listID string) *slog.Logger {
	return logger.With(slog.String(KeyList, listID))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Sink returns a slog attribute for a text sink name.
func Sink(name string) slog.Attr {
	return slog.String(KeySink, name)
}

// Count returns a slog attribute for a number of items.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Duration returns a slog attribute for an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Err returns a slog attribute for an error.
// A nil error yields an empty group, which slog omits from output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
