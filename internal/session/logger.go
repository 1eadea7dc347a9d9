package session

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the default logger for sessions created afterwards.
// By default sessions log nothing. Pass nil to restore that.
//
// Levels used:
//   - [slog.LevelDebug]: per-action detail (tool, point, pixels written)
//   - [slog.LevelInfo]: lifecycle (created, resized, cleared, exported)
//   - [slog.LevelWarn]: rejected input
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the default session logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
