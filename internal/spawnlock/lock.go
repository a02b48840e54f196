package spawnlock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/baobuildbuddy/baostack/internal/fileutil"
)

// retryInterval is the interval between consecutive attempts to acquire the
// spawn lock while another instance holds it.
const retryInterval = 50 * time.Millisecond

// DefaultDir returns the default lock directory, $TMPDIR/baostack.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "baostack")
}

// Path returns the lock file path for a stack on host:port inside dir.
// Colons (IPv6 hosts) are replaced so the name is valid on every platform.
func Path(dir, host string, port uint16) string {
	name := strings.NewReplacer(":", "_", "/", "_", `\`, "_").Replace(host)
	return filepath.Join(dir, name+"-"+strconv.FormatUint(uint64(port), 10)+".lock")
}

// Lock is a held spawn lock.
type Lock struct {
	fl  *flock.Flock
	log *slog.Logger
}

// Acquire blocks until the exclusive lock for host:port is held or ctx is
// done. dir is created if missing.
func Acquire(ctx context.Context, logger *slog.Logger, dir, host string, port uint16) (*Lock, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating spawn lock directory: %w", err)
	}

	lockPath := Path(dir, host, port)
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, retryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring spawn lock %s: %w", lockPath, err)
	}
	if !locked {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring spawn lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring spawn lock %s: lock not acquired", lockPath)
	}

	logger.Debug("spawn lock acquired", "path", lockPath)
	return &Lock{fl: fl, log: logger}, nil
}

// Path returns the lock file path, or "" for a nil lock.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.fl.Path()
}

// Release unlocks and closes the lock file. It is safe on a nil lock and
// safe to call more than once. Errors are logged at debug level.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Close(); err != nil {
		l.log.Debug("failed to release spawn lock", "path", l.fl.Path(), "err", err)
		return
	}
	l.log.Debug("spawn lock released", "path", l.fl.Path())
}
