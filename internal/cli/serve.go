package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/schemaview/internal/server"
	"github.com/matzehuels/schemaview/pkg/observability"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxSessions int
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Long: `Serve the diagram API over HTTP.

POST /v1/layout lays out a snapshot in one call. /v1/diagrams keeps an
interactive diagram per session for drag, hover and fit events. Prometheus
metrics are exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-sessions") {
				cfg.MaxSessions = maxSessions
			}
			return c.runServe(cmd.Context(), cfg.Addr, cfg.MaxSessions, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", 0, "maximum open diagram sessions")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxSessions int, noCache bool) error {
	if maxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", maxSessions)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	metrics := server.NewMetrics()
	metrics.Install()
	defer observability.Reset()

	sc := c.Config.Server
	srv := server.New(server.Config{
		Addr:            addr,
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		ShutdownTimeout: sc.ShutdownTimeout,
		MaxBodyBytes:    sc.MaxBodyBytes,
		MaxSessions:     maxSessions,
		View:            c.Config.View(),
	}, runner, metrics, c.Logger)

	c.ui.info("Serving on %s", StyleHighlight.Render(addr))
	c.ui.keyValue("engine", c.Config.Layout.Engine)
	backend := c.Config.Cache.Backend
	if noCache {
		backend = "none"
	}
	c.ui.keyValue("cache", backend)
	c.ui.keyValue("sessions", fmt.Sprintf("%d max", maxSessions))

	return srv.ListenAndServe(ctx)
}
