package baostack

import (
	"io"
	"time"

	"github.com/baobuildbuddy/baostack/internal/startup"
)

// ConfigSnapshot holds a copy of stackConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures without accessing internals.
type ConfigSnapshot struct {
	ReadyTimeout     time.Duration
	PollInterval     time.Duration
	StopTimeout      time.Duration
	StartDirs        []string
	LockDir          string
	DisableSpawnLock bool
	BootstrapArgs    []string
	Environ          []string
	Stdout           io.Writer
	Stderr           io.Writer
}

// ApplyOptionsForTesting applies opts to the default configuration and
// returns a snapshot of the result.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultStackConfig(startup.Default())
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		ReadyTimeout:     cfg.ReadyTimeout,
		PollInterval:     cfg.PollInterval,
		StopTimeout:      cfg.StopTimeout,
		StartDirs:        cfg.Locator.StartDirs,
		LockDir:          cfg.LockDir,
		DisableSpawnLock: cfg.DisableSpawnLock,
		BootstrapArgs:    cfg.BootstrapArgs,
		Environ:          cfg.Environ,
		Stdout:           cfg.Stdout,
		Stderr:           cfg.Stderr,
	}
}
