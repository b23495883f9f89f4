package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// targetsCommand creates the targets command, which lists the configured
// target panels.
func (c *CLI) targetsCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the configured target panels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := c.settings().Targets
			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(targets)
			}
			if len(targets) == 0 {
				newPrinter(out).info("No targets configured")
				return nil
			}
			fmt.Fprintln(out, targetsTable(targets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the targets as JSON")
	return cmd
}
