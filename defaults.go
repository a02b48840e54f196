package baostack

import (
	"time"

	"github.com/baobuildbuddy/baostack/internal/process"
	"github.com/baobuildbuddy/baostack/internal/readiness"
	"github.com/baobuildbuddy/baostack/internal/startup"
)

// Default values used by New when neither the environment nor an option
// overrides them.
const (
	// DefaultHost is probed and passed to the child as HOST.
	DefaultHost = startup.DefaultHost

	// DefaultServerPort is the backend port, passed to the child as PORT.
	DefaultServerPort = uint16(startup.DefaultServerPort)

	// DefaultClientPort is the UI dev server port.
	DefaultClientPort = uint16(startup.DefaultClientPort)

	// DefaultBootstrapCommand is the executable run from the workspace root.
	DefaultBootstrapCommand = startup.DefaultBootstrapCommand

	// DefaultReadyTimeout bounds the wait for each of the two ports.
	DefaultReadyTimeout time.Duration = readiness.DefaultTimeout

	// DefaultPollInterval is the pause between readiness probes.
	DefaultPollInterval time.Duration = readiness.DefaultPollInterval

	// DefaultStopTimeout bounds the SIGTERM/SIGKILL sequence on Shutdown.
	DefaultStopTimeout time.Duration = process.DefaultStopTimeout
)
