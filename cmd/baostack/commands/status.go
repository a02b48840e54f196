package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/baobuildbuddy/baostack/internal/readiness"
	"github.com/baobuildbuddy/baostack/internal/sentinel"
	"github.com/baobuildbuddy/baostack/internal/startup"
)

// errNotReady makes "baostack status" exit non-zero when a service is down.
const errNotReady = sentinel.Error("dev stack is not ready")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the server and UI ports once",
	Long: `Probe the configured server and UI ports once and print whether each
accepts TCP connections. Exits non-zero if either does not.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := startup.FromEnvironment()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Service", "Address", "Status"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	prober := readiness.New(nil)
	allReady := true
	for _, svc := range []struct {
		name string
		port startup.Port
	}{
		{"server", cfg.ServerPort},
		{"ui", cfg.ClientPort},
	} {
		status := "ready"
		if !prober.Ready(cmd.Context(), cfg.Host, uint16(svc.port)) {
			status = "not ready"
			allReady = false
		}
		table.Append([]string{svc.name, readiness.Address(cfg.Host, uint16(svc.port)), status})
	}
	table.Render()

	if !allReady {
		return errNotReady
	}
	return nil
}
