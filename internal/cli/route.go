package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	graph       graphFlags
	root        int32
	pick        bool
	verify      bool
	jsonOut     bool
	svg         string
	dot         string
	parallelism int
}

// routeCommand creates the route command, which finds the cheapest input
// code from the root panel through every requested target.
//
// Targets are given as configured names or raw panel indices. Without
// arguments every non-optional target is visited.
func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:     "route [targets...]",
		Short:   "Find the cheapest input code visiting the given targets",
		Example: `  graphbash route --dump RAM.bin
  graphbash route panic-dash instaboss --graph graph.json
  graphbash route --root 34 --json -- -72`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("root") {
				opts.root = c.settings().Graph.Root
			}
			return c.runRoute(cmd, args, opts)
		},
	}

	opts.graph.register(cmd, true)
	cmd.Flags().Int32Var(&opts.root, "root", 0, "panel to start from (default from config)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose targets interactively")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "cross-check the result by trying every goal order")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the route diagram as SVG")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the route diagram as DOT")
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", 0, "concurrent path searches (default GOMAXPROCS)")

	return cmd
}

func (c *CLI) runRoute(cmd *cobra.Command, args []string, opts routeOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	cfg := c.settings()
	out := cmd.OutOrStdout()
	p := newPrinter(out)

	if opts.pick {
		picked, err := pickTargets(cfg.Targets)
		if err != nil {
			return err
		}
		if picked == nil {
			p.detail("No targets selected")
			return nil
		}
		args = picked
	}
	goals, err := cfg.Goals(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.graph.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	loaded, err := c.loadGraph(ctx, runner, opts.graph.options(cfg))
	if err != nil {
		return err
	}
	if !opts.jsonOut {
		p.stats(loaded.Graph.NodeCount(), loaded.Graph.EdgeCount(), loaded.CacheHit)
	}

	names := make(map[int32]string, len(cfg.Targets))
	for _, t := range cfg.Targets {
		names[t.Node] = t.Name
	}

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Route(ctx, loaded.Graph, pipeline.RouteOptions{
		Origin:      opts.root,
		Goals:       goals,
		Policy:      cfg.Cost,
		Names:       names,
		Parallelism: opts.parallelism,
		Verify:      opts.verify,
	})
	if errors.Is(err, errors.ErrCodeNoRoute) {
		writeNoRoute(out)
		return nil
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found route through %d targets", len(res.Goals)))

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		writeRoute(out, res, cfg)
	}

	return writeDiagrams(ctx, p, loaded.Graph, res, names, opts)
}

// writeDiagrams renders the route to the files requested by --dot and --svg.
func writeDiagrams(ctx context.Context, p printer, g *panel.Graph, res *pipeline.Result, names map[int32]string, opts routeOpts) error {
	outputs := []struct{ path, format string }{
		{opts.dot, pipeline.FormatDOT},
		{opts.svg, pipeline.FormatSVG},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		data, err := pipeline.Render(ctx, g, res, o.format, names)
		if err != nil {
			return fmt.Errorf("render %s: %w", o.format, err)
		}
		if err := os.WriteFile(o.path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		if !opts.jsonOut {
			p.file(o.path)
		}
	}
	return nil
}
