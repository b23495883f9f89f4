package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbash/internal/server"
)

// serveCommand creates the serve command, which loads the panel graph once
// and answers route queries over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags graphFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			loaded, err := c.loadGraph(ctx, runner, flags.options(cfg))
			if err != nil {
				return err
			}

			srv, err := server.New(runner, cfg, loaded, loggerFromContext(ctx))
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.keyValue("Listening", addr)
			p.keyValue("Panels", strconv.Itoa(loaded.Graph.NodeCount()))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
