package ggrid

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. It reports itself disabled at all levels.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger shared by caches and controllers that were
// not given one with WithLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger replaces the fallback logger for segment caches, controllers
// and HiDPI setup. A fresh process logs nothing; nil switches back to that.
// It may be called while frames are rendering.
//
// A Controller built with WithLogger ignores this setting.
//
// Log levels used by ggrid:
//   - [slog.LevelDebug]: segment loads, cache evictions, surface resizes
//   - [slog.LevelInfo]: controller construction
//   - [slog.LevelWarn]: source failures surfaced to the caller
//
// Example:
//
//	ggrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the fallback logger installed by SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
