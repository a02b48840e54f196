package readiness

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/baobuildbuddy/baostack/internal/sentinel"
)

// ErrTimedOut matches every *TimeoutError.
const ErrTimedOut = sentinel.Error("timed out waiting for service")

// ErrChildExited is returned by WaitUntilReady when the watched child process
// exits with a failure status before the port became reachable.
const ErrChildExited = sentinel.Error("bootstrap process exited before services became ready")

// ErrIntervalNotPositive indicates a non-positive poll interval.
const ErrIntervalNotPositive = sentinel.Error("interval must be positive")

// ErrTimeoutNotPositive indicates a non-positive timeout.
const ErrTimeoutNotPositive = sentinel.Error("timeout must be positive")

// TimeoutError reports the address that never became reachable.
type TimeoutError struct {
	Host    string
	Port    uint16
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for service on %s after %s", e.Addr(), e.Timeout)
}

// Is makes errors.Is(err, ErrTimedOut) true for any *TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimedOut
}

// Addr returns the host:port pair that was polled.
func (e *TimeoutError) Addr() string {
	return Address(e.Host, e.Port)
}

// Address joins host and port, bracketing IPv6 literals.
func Address(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}
