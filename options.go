package baostack

import (
	"fmt"
	"io"
	"slices"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("baostack: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("baostack: %s must not be empty", name))
	}
}

// Option configures a Stack during construction via New.
//
// Several With* functions panic on invalid input (non-positive durations,
// empty paths). Option values are typically constants chosen by the
// embedding program, so an invalid value is a programmer error, in the
// spirit of regexp.MustCompile.
type Option func(*stackConfig)

// WithReadyTimeout sets how long Start waits for each port to accept
// connections. The server and client ports are waited on in turn, each with
// the full timeout.
//
// Default: 120 seconds.
//
// Panics if d <= 0.
func WithReadyTimeout(d time.Duration) Option {
	requirePositive("ready timeout", d)
	return func(c *stackConfig) {
		c.ReadyTimeout = d
	}
}

// WithPollInterval sets the pause between readiness probes.
//
// Default: 250 milliseconds.
//
// Panics if d <= 0.
func WithPollInterval(d time.Duration) Option {
	requirePositive("poll interval", d)
	return func(c *stackConfig) {
		c.PollInterval = d
	}
}

// WithStopTimeout sets the overall budget for terminating the spawned
// process group on Shutdown. SIGKILL follows SIGTERM after at most five
// seconds, or sooner if d is shorter.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithStopTimeout(d time.Duration) Option {
	requirePositive("stop timeout", d)
	return func(c *stackConfig) {
		c.StopTimeout = d
	}
}

// WithStartDirs replaces the directories walked upward during workspace
// discovery. BAO_WORKSPACE_ROOT still takes precedence.
//
// Panics if no directory is given or any directory is empty.
func WithStartDirs(dirs ...string) Option {
	if len(dirs) == 0 {
		panic("baostack: start directories must not be empty")
	}
	for _, d := range dirs {
		requireNonEmpty("start directory", d)
	}
	dirs = slices.Clone(dirs)
	return func(c *stackConfig) {
		c.Locator.StartDirs = dirs
	}
}

// WithLockDir sets the directory holding spawn lock files. It is created on
// first use.
//
// Default: $TMPDIR/baostack.
//
// Panics if dir is empty.
func WithLockDir(dir string) Option {
	requireNonEmpty("lock directory", dir)
	return func(c *stackConfig) {
		c.LockDir = dir
		c.DisableSpawnLock = false
	}
}

// WithoutSpawnLock disables cross-process serialization of spawns.
func WithoutSpawnLock() Option {
	return func(c *stackConfig) {
		c.DisableSpawnLock = true
	}
}

// WithBootstrapArgs replaces the arguments passed to the bootstrap command.
// Calling it with no arguments runs the command bare.
//
// Default: run dev.
func WithBootstrapArgs(args ...string) Option {
	args = slices.Clone(args)
	return func(c *stackConfig) {
		c.BootstrapArgs = args
	}
}

// WithEnviron sets the base environment of the spawned process. PORT, HOST
// and BAO_DISABLE_AUTH are still appended.
//
// Default: os.Environ() at spawn time.
func WithEnviron(env []string) Option {
	env = slices.Clone(env)
	if env == nil {
		env = []string{}
	}
	return func(c *stackConfig) {
		c.Environ = env
	}
}

// WithOutput redirects the spawned process's stdout and stderr. A nil
// writer keeps the parent's stream.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *stackConfig) {
		c.Stdout = stdout
		c.Stderr = stderr
	}
}
