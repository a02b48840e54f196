package core

import (
	"log/slog"
	"sync/atomic"
)

// logger holds a caller-supplied logger. Named "logger" instead of "log" to
// avoid shadowing the stdlib "log" package.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute. It is
// cleared by SetLogger so a later slog.SetDefault can be picked up.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the package-level logger. Without SetLogger it is
// slog.Default() tagged with component=baostack. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "baostack")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. Nil restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
