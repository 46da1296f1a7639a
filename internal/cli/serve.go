package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecolayout/pkg/cache"
	"github.com/matzehuels/ecolayout/pkg/pipeline"
	"github.com/matzehuels/ecolayout/pkg/server"
)

// redisKeyPrefix scopes server cache entries in a shared Redis.
const redisKeyPrefix = appName + ":"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: heredoc.Doc(`
			Serve the layout pipeline over HTTP.

			Routes:
			  GET  /healthz
			  GET  /metrics
			  POST /v1/layout
			  POST /v1/render
			  POST /v1/modules

			With --redis, layouts and rendered artifacts are cached in Redis so several
			server instances share results. Without it the local file cache is used.
		`),
		Example: heredoc.Doc(`
			ecolayout serve --addr :9090
			ecolayout serve --redis localhost:6379
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis") && c.Config.Server.RedisAddr != "" {
				redisAddr = c.Config.Server.RedisAddr
			}
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (host:port) for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	runner, err := c.serverRunner(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Addr: addr}, runner, c.Logger)
	defer srv.Close()

	printInfo("Serving on %s", StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx)
}

// serverRunner picks the cache backend for the server.
func (c *CLI) serverRunner(ctx context.Context, redisAddr string, noCache bool) (*pipeline.Runner, error) {
	if noCache || redisAddr == "" {
		return c.newRunner(noCache)
	}

	rc, err := cache.NewRedisCache(ctx, redisAddr)
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
	}
	c.Logger.Info("using redis cache", "addr", redisAddr)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), c.Logger), nil
}
