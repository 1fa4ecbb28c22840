package cli

import (
	"github.com/spf13/cobra"

	"github.com/snapkit/snapcard/internal/server"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool
	var store storeOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering and history API",
		Long: `Serve exposes rendering and history over HTTP:

  GET    /healthz            liveness check
  POST   /api/render         render text, returns a data URI
  GET    /api/history        list saved snaps
  POST   /api/history        save a snap
  GET    /api/history/{id}   fetch one snap
  DELETE /api/history/{id}   delete a snap

The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			s, err := c.newStore(cmd, store)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := server.New(server.Config{
				Addr:   addr,
				Runner: runner,
				Store:  s,
				Logger: c.Logger,
			})
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")
	registerStoreFlags(cmd, &store)
	return cmd
}
