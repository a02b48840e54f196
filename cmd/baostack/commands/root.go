// Package commands implements the baostack CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/baobuildbuddy/baostack"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	logLevel  string
	logFormat string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "baostack",
	Short: "Bring up the local dev stack for the desktop app",
	Long: `baostack makes sure the backend server and the UI dev server are
running, starting them with the workspace's bootstrap command if needed, and
stops whatever it started on exit.

Host, ports and the bootstrap command are read from BAO_STACK_HOST, PORT,
CLIENT_PORT and BAO_STACK_BOOTSTRAP_COMMAND.

Use "baostack [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return err
		}
		baostack.SetLogger(l.With("component", "baostack"))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(versionCmd)
}
