package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

const (
	// DefaultPollInterval is the pause between two connection attempts.
	DefaultPollInterval = 250 * time.Millisecond

	// DefaultTimeout bounds how long WaitUntilReady polls a single port.
	DefaultTimeout = 120 * time.Second

	// dialTimeout caps one connection attempt. Refused connections return
	// immediately; this only matters for a SYN that is never answered.
	dialTimeout = 2 * time.Second
)

// Prober performs TCP readiness checks. The zero value is not usable; create
// one with New. A Prober is safe for concurrent use.
type Prober struct {
	dialer *net.Dialer
	log    *slog.Logger
}

// New returns a Prober. If logger is nil, slog.Default() is used.
func New(logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		dialer: &net.Dialer{Timeout: dialTimeout},
		log:    logger,
	}
}

// Ready reports whether a TCP connection to host:port succeeds. Every
// failure (refused, unreachable, timed out) counts as not ready.
func (p *Prober) Ready(ctx context.Context, host string, port uint16) bool {
	conn, err := p.dialer.DialContext(ctx, "tcp", Address(host, port))
	if err != nil {
		p.log.Debug("readiness probe failed", "addr", Address(host, port), "error", err)
		return false
	}
	_ = conn.Close() // best-effort close of probe connection
	return true
}

// AllReady reports whether every port on host is Ready. Ports are checked in
// order and the first failure short-circuits.
func (p *Prober) AllReady(ctx context.Context, host string, ports ...uint16) bool {
	for _, port := range ports {
		if !p.Ready(ctx, host, port) {
			return false
		}
	}
	return true
}

// WaitConfig configures WaitUntilReady.
type WaitConfig struct {
	Host     string
	Port     uint16
	Interval time.Duration // Poll interval; see DefaultPollInterval
	Timeout  time.Duration // Overall deadline; see DefaultTimeout

	// ChildExited, if non-nil, is closed when the process expected to open
	// the port has exited. ChildErr then reports how it exited: a non-nil
	// error aborts the wait with ErrChildExited, a nil error (clean exit,
	// e.g. a launcher that daemonised) lets polling continue.
	ChildExited <-chan struct{}
	ChildErr    func() error
}

// WaitUntilReady polls Ready until it succeeds or cfg.Timeout elapses. The
// deadline is checked before every attempt, and each attempt runs under the
// deadline context, so the call never overruns the deadline by more than one
// dial. On timeout it returns a *TimeoutError.
func (p *Prober) WaitUntilReady(ctx context.Context, cfg WaitConfig) error {
	addr := Address(cfg.Host, cfg.Port)
	if cfg.Interval <= 0 {
		return fmt.Errorf("wait for %s: %w", addr, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", addr, ErrTimeoutNotPositive)
	}

	// PollUntilContextTimeout invokes the condition sequentially, so attempt
	// needs no synchronization.
	attempt := 0
	err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			if err := childFailure(cfg); err != nil {
				return false, err
			}
			attempt++
			if !p.Ready(pollCtx, cfg.Host, cfg.Port) {
				return false, nil
			}
			p.log.Debug("service ready", "addr", addr, "attempt", attempt)
			return true, nil
		})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrChildExited):
		return fmt.Errorf("wait for %s: %w", addr, err)
	case errors.Is(err, context.DeadlineExceeded):
		return &TimeoutError{Host: cfg.Host, Port: cfg.Port, Timeout: cfg.Timeout}
	default:
		return fmt.Errorf("wait for %s: %w", addr, err)
	}
}

// childFailure returns a wrapped ErrChildExited if the watched child has
// exited with an error, and nil otherwise.
func childFailure(cfg WaitConfig) error {
	if cfg.ChildExited == nil {
		return nil
	}
	select {
	case <-cfg.ChildExited:
	default:
		return nil
	}
	if cfg.ChildErr == nil {
		return nil
	}
	if exitErr := cfg.ChildErr(); exitErr != nil {
		return fmt.Errorf("%w: %w", ErrChildExited, exitErr)
	}
	return nil
}
