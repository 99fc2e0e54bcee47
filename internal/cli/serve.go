package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringstack/pkg/api"
	"github.com/matzehuels/ringstack/pkg/buildinfo"
	"github.com/matzehuels/ringstack/pkg/cache"
	"github.com/matzehuels/ringstack/pkg/observability"
	"github.com/matzehuels/ringstack/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	redis   string
	timeout time.Duration
	noCache bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design pipeline over HTTP",
		Long: `Serve the design pipeline over HTTP.

Routes:
  GET  /healthz
  POST /v1/stacks
  POST /v1/render/{format}
  POST /v1/layers
  POST /v1/design

Artifacts are cached in Redis when --redis (or cache.redis in the config) is
set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				opts.addr = c.Config.Serve.Addr
			}
			if !flags.Changed("redis") {
				opts.redis = c.Config.Cache.Redis
			}
			if !flags.Changed("timeout") {
				opts.timeout = c.Config.Serve.RequestTimeout()
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for the artifact cache (redis://host:6379/0)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, backend, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := api.NewServer(runner, c.Logger)
	srv.Timeout = opts.timeout

	printSuccess("Serving on %s", StyleLink.Render(opts.addr))
	printKeyValue("cache", backend)
	printKeyValue("timeout", opts.timeout.String())
	printKeyValue("version", buildinfo.Version)
	printDetail("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the Redis cache when configured, else the CLI cache.
// It also names the backend for display.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	if opts.noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), "disabled", nil
	}
	if opts.redis == "" {
		fc, err := newCache(false)
		return fc, "file", err
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redis, Prefix: appName + ":"})
	if err != nil {
		return nil, "", err
	}
	return rc, "redis", nil
}
