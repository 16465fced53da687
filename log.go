//go:build !ios && !android && (amd64 || arm64)

package vdpva

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	loggerPtr atomic.Pointer[slog.Logger]
	loggerSet atomic.Bool
)

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by every driver.
// By default vdpva produces no log output. Pass nil to restore that.
//
// Log levels used by vdpva:
//   - [slog.LevelDebug]: failed native calls, flip queue and ring state
//   - [slog.LevelInfo]: device open and close, drawable rebinds
//   - [slog.LevelWarn]: release failures during teardown, display preemption
func SetLogger(l *slog.Logger) {
	if l == nil {
		loggerSet.Store(false)
		loggerPtr.Store(slog.New(nopHandler{}))
		return
	}
	loggerSet.Store(true)
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// enableDebugLogging installs a debug-level text logger on stderr unless
// the application already set one.
func enableDebugLogging() {
	if loggerSet.Load() {
		return
	}
	SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
