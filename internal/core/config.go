package core

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/baobuildbuddy/baostack/internal/process"
	"github.com/baobuildbuddy/baostack/internal/readiness"
	"github.com/baobuildbuddy/baostack/internal/spawnlock"
	"github.com/baobuildbuddy/baostack/internal/startup"
	"github.com/baobuildbuddy/baostack/internal/workspace"
)

// DefaultBootstrapArgs follow the bootstrap command: "bun run dev".
var DefaultBootstrapArgs = []string{"run", "dev"}

// Config holds everything an Orchestrator needs. All fields are immutable
// after New.
type Config struct {
	// Startup is the environment-derived host, ports and bootstrap settings.
	Startup startup.Config

	// Locator finds the workspace root. An empty Locator.Override is filled
	// from Startup.WorkspaceRootOverride().
	Locator workspace.Locator

	// ReadyTimeout bounds the wait for each port. Default: 120 seconds.
	ReadyTimeout time.Duration

	// PollInterval is the pause between readiness probes. Default: 250ms.
	PollInterval time.Duration

	// StopTimeout is the overall budget for terminating the spawned child
	// on Shutdown. Default: 10 seconds.
	StopTimeout time.Duration

	// LockDir holds the spawn lock files. Ignored when DisableSpawnLock is set.
	LockDir          string
	DisableSpawnLock bool

	// BootstrapArgs follow Startup.BootstrapCommand(). Default: run dev.
	BootstrapArgs []string

	// Environ is the base environment for the child. Nil means os.Environ().
	Environ []string

	// Stdout and Stderr for the child. Nil inherits the parent's streams.
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config for the given startup settings with every
// other field at its default.
func DefaultConfig(sc startup.Config) Config {
	return Config{
		Startup:       sc,
		ReadyTimeout:  readiness.DefaultTimeout,
		PollInterval:  readiness.DefaultPollInterval,
		StopTimeout:   process.DefaultStopTimeout,
		LockDir:       spawnlock.DefaultDir(),
		BootstrapArgs: DefaultBootstrapArgs,
	}
}

// spawnLockWait bounds the wait for another instance's spawn lock. The holder
// keeps it through both port waits, so it may hold it for two ReadyTimeouts.
func (c Config) spawnLockWait() time.Duration {
	return 2 * c.ReadyTimeout
}

// Validate checks all Config invariants and reports every violation at once.
func (c Config) Validate() error {
	var errs []error

	if c.Startup.Host == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Startup.BootstrapCommand() == "" {
		errs = append(errs, errors.New("bootstrap command must not be empty"))
	}
	if c.ReadyTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ready timeout must be greater than 0, got %s", c.ReadyTimeout))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be greater than 0, got %s", c.PollInterval))
	}
	if c.StopTimeout <= 0 {
		errs = append(errs, fmt.Errorf("stop timeout must be greater than 0, got %s", c.StopTimeout))
	}
	if !c.DisableSpawnLock && c.LockDir == "" {
		errs = append(errs, errors.New("lock directory must not be empty unless the spawn lock is disabled"))
	}

	return errors.Join(errs...)
}
