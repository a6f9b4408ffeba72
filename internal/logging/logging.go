// Package logging holds the logger shared by the geometry packages.
//
// Nothing is logged until SetLogger installs a logger. Levels in use:
//   - [slog.LevelDebug]: axis recalculation, primitive regeneration
//   - [slog.LevelWarn]: consistency problems resolved by regenerating
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the package logger. A nil logger restores silence.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	current.Store(l)
}

// Logger returns the active logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return current.Load()
}
