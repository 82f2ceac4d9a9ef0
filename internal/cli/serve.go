package cli

import (
	"github.com/spf13/cobra"

	"github.com/mpgalab/placeview/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement HTTP API",
		Long: `Start an HTTP server exposing the placement pipeline.

Placements are uploaded into an in-memory workspace and rendered on
demand. Rendered artifacts are cached with the configured backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer func() { _ = runner.Close() }()

			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			srv := server.New(server.Config{
				Addr:    addr,
				Palette: c.Config.Palette,
				Width:   c.Config.Width,
			}, runner, logger)

			printInfo("Serving placement API on %s", addr)
			printDetail("POST /api/v1/placements to upload, ctrl-c to stop")
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}
