package phototable

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically because the
// loader logs from its background goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for phototable and its sub-packages.
// By default, phototable produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by phototable:
//   - [slog.LevelDebug]: photo lifecycle (launch, drop, pick-up, eviction)
//   - [slog.LevelInfo]: table start, orientation changes
//   - [slog.LevelWarn]: image source failures that exhausted their retries
//
// Example:
//
//	phototable.SetLogger(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by phototable.
// Sub-packages (internal/source, internal/termhost) call this to share the
// same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
