package baostack

import (
	"log/slog"

	"github.com/baobuildbuddy/baostack/internal/core"
)

// SetLogger replaces the package-level logger used by baostack. The logger
// is used as given; no attributes are added.
//
// If l is nil, the logger resets to slog.Default() with a
// component=baostack attribute. Call SetLogger(nil) after slog.SetDefault()
// to pick up the change.
//
// SetLogger is safe to call concurrently, but components capture the logger
// when New runs, so call it before New.
//
// Example:
//
//	baostack.SetLogger(myLogger.With("component", "baostack"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
