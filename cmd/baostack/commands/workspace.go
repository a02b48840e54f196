package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baobuildbuddy/baostack/internal/startup"
	"github.com/baobuildbuddy/baostack/internal/workspace"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Print the resolved workspace root",
	Long: `Print the directory the bootstrap command would run in: BAO_WORKSPACE_ROOT
if set, otherwise the closest ancestor holding package.json and packages/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := startup.FromEnvironment()
		if err != nil {
			return err
		}
		root, err := workspace.Locator{Override: cfg.WorkspaceRootOverride()}.Resolve()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), root)
		return nil
	},
}
