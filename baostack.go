package baostack

import (
	"context"
	"fmt"

	"github.com/baobuildbuddy/baostack/internal/core"
	"github.com/baobuildbuddy/baostack/internal/startup"
)

// Endpoints are the service addresses; see ServerURL and ClientURL.
type Endpoints = core.Endpoints

// State is the lifecycle state of a Stack.
type State = core.State

// Lifecycle states reported by Stack.State.
const (
	StateNotStarted = core.StateNotStarted
	StateSpawning   = core.StateSpawning
	StateWaiting    = core.StateWaiting
	StateReady      = core.StateReady
	StateFailed     = core.StateFailed
)

// Compile-time interface satisfaction check.
var _ Stack = (*stackWrapper)(nil)

// stackWrapper hides *core.Orchestrator behind the Stack interface so callers
// cannot reach EnsureStackRunning and WaitForServices individually.
type stackWrapper struct {
	orch *core.Orchestrator
}

func (w *stackWrapper) Start(ctx context.Context) (Endpoints, error) {
	return w.orch.Start(ctx)
}

func (w *stackWrapper) Shutdown() {
	w.orch.Shutdown()
}

func (w *stackWrapper) Endpoints() Endpoints {
	return w.orch.Endpoints()
}

func (w *stackWrapper) State() State {
	return w.orch.State()
}

// New reads the startup configuration from the environment, applies opts
// and returns a Stack that has not been started. It performs no network or
// process I/O.
//
// Returns an error matching ErrInvalidPortValue when PORT or CLIENT_PORT is
// set but malformed.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
//
//nolint:ireturn // Returns Stack interface by design for testability (mockable).
func New(opts ...Option) (Stack, error) {
	sc, err := startup.FromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	cfg := defaultStackConfig(sc)
	for _, opt := range opts {
		opt(&cfg)
	}

	orch, err := core.New(cfg.toCoreConfig())
	if err != nil {
		return nil, err
	}
	return &stackWrapper{orch: orch}, nil
}

// stackConfig wraps core.Config so internal types stay out of the Option
// signature.
type stackConfig struct {
	core.Config
}

func (c stackConfig) toCoreConfig() core.Config {
	return c.Config
}

func defaultStackConfig(sc startup.Config) stackConfig {
	return stackConfig{core.DefaultConfig(sc)}
}
