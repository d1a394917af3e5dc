package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/indexflow/pkg/cache"
	"github.com/matzehuels/indexflow/pkg/observability"
	"github.com/matzehuels/indexflow/pkg/pipeline"
	"github.com/matzehuels/indexflow/pkg/server"
)

// redisURLEnv names the environment variable read when --redis-url is unset.
const redisURLEnv = "INDEXFLOW_REDIS_URL"

type serveOpts struct {
	addr        string
	redisURL    string
	redisPrefix string
	maxBody     int64
	timeout     time.Duration
}

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		so    serveOpts
		flags optionFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve the pipeline over HTTP.

  GET  /healthz
  POST /v1/graph    bundle -> graph JSON
  POST /v1/layout   bundle -> positioned and routed graph JSON
  POST /v1/render   bundle -> image/svg+xml (?format=dot|json|pdf|png)

The option flags set the defaults every request starts from; query
parameters (engine, direction, node_spacing, ...) override them per request.
Results are cached in memory, or in Redis when --redis-url (or
` + redisURLEnv + `) is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.configPath)
			if err != nil {
				return err
			}
			if so.redisURL == "" {
				so.redisURL = os.Getenv(redisURLEnv)
			}
			return c.runServe(cmd.Context(), so, opts)
		},
	}

	cmd.Flags().StringVar(&so.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&so.redisURL, "redis-url", "", "Redis URL for the shared result cache (default: in-memory)")
	cmd.Flags().StringVar(&so.redisPrefix, "redis-prefix", appName+":", "prefix for Redis keys")
	cmd.Flags().Int64Var(&so.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&so.timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	flags.register(cmd.Flags(), true)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, so serveOpts, defaults pipeline.Options) error {
	cc, err := c.serverCache(ctx, so)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	observability.NewLogHooks(c.Logger).Register()
	defer observability.Reset()

	srv := server.New(runner, c.Logger, server.Config{
		Addr:         so.addr,
		MaxBodyBytes: so.maxBody,
		Timeout:      so.timeout,
		Defaults:     defaults,
	})
	printInfo("Serving on %s", StyleHighlight.Render(so.addr))
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serverCache(ctx context.Context, so serveOpts) (cache.Cache, error) {
	if so.redisURL == "" {
		c.Logger.Info("using in-memory cache")
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		URL:     so.redisURL,
		Prefix:  so.redisPrefix,
		Backoff: cache.DefaultBackoff,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("using redis cache", "prefix", so.redisPrefix)
	return rc, nil
}
