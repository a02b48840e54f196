package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baobuildbuddy/baostack"
)

var (
	readyTimeout time.Duration
	noLock       bool
	lockDir      string
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the dev stack and keep it running until interrupted",
	Long: `Start the dev stack if it is not already running, wait until both the
server and the UI accept connections, then block until SIGINT or SIGTERM.
On exit the bootstrap process and everything it forked are terminated.

Examples:
  # Start with defaults (http://127.0.0.1:3000 and :3001)
  baostack up

  # Use other ports and skip authentication in the backend
  PORT=4000 CLIENT_PORT=4001 BAO_DISABLE_AUTH=1 baostack up`,
	RunE: runUp,
}

func init() {
	upCmd.Flags().DurationVar(&readyTimeout, "ready-timeout", baostack.DefaultReadyTimeout, "How long to wait for each service")
	upCmd.Flags().BoolVar(&noLock, "no-lock", false, "Do not serialize spawns with other baostack instances")
	upCmd.Flags().StringVar(&lockDir, "lock-dir", "", "Directory for spawn lock files (default: $TMPDIR/baostack)")
}

func runUp(cmd *cobra.Command, args []string) error {
	if readyTimeout <= 0 {
		return fmt.Errorf("--ready-timeout must be greater than 0, got %s", readyTimeout)
	}
	opts := []baostack.Option{baostack.WithReadyTimeout(readyTimeout)}
	switch {
	case noLock:
		opts = append(opts, baostack.WithoutSpawnLock())
	case lockDir != "":
		opts = append(opts, baostack.WithLockDir(lockDir))
	}

	stack, err := baostack.New(opts...)
	if err != nil {
		return err
	}
	defer stack.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ep, err := stack.Start(ctx)
	if err != nil {
		return fmt.Errorf("start dev stack: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ep)

	<-ctx.Done()
	fmt.Fprintln(cmd.ErrOrStderr(), "shutting down")
	return nil
}
