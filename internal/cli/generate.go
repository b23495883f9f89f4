package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbash/pkg/graph"
)

// generateCommand creates the generate command, which expands a RAM dump
// into a panel graph and writes it as JSON for later route queries.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  graphFlags
		output string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate the panel graph from a RAM dump",
		Example: `  graphbash generate --dump RAM.bin --depth 50 -o graph.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg := c.settings()

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(cfg)
			opts.File = ""
			loaded, err := c.loadGraph(ctx, runner, opts)
			if err != nil {
				return err
			}

			if err := graph.WriteGraphFile(loaded.Graph, loaded.Source, output); err != nil {
				return fmt.Errorf("write graph: %w", err)
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Generated panel graph (depth %d)", loaded.Source.MaxDepth)
			p.stats(loaded.Graph.NodeCount(), loaded.Graph.EdgeCount(), loaded.CacheHit)
			p.file(output)
			p.nextStep("Find a route", "graphbash route --graph "+output)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output file")

	return cmd
}
