package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/erdlayout/internal/server"
	"github.com/matzehuels/erdlayout/pkg/cache"
	"github.com/matzehuels/erdlayout/pkg/errors"
)

// serveOptions selects the listen address and the cache backend.
type serveOptions struct {
	addr    string
	redis   string
	mongo   string
	mongoDB string
	noCache bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOptions
	flags := newSettingsFlags()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Endpoints:
  POST  /api/layout    compute a layout for a JSON schema
  GET   /api/settings  show the live engine settings
  PATCH /api/settings  update the live engine settings
  GET   /healthz       liveness check

Layouts are cached in Redis (--redis), MongoDB (--mongo) or the local cache
directory. The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			store, backend, err := openServeCache(cmd.Context(), opts)
			if err != nil {
				return err
			}
			runner := c.runnerWithCache(store, settings)
			defer runner.Close()

			printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
			printDetail("cache: %s", backend)
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address or redis:// URL for the layout cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for the layout cache")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// openServeCache opens the backend selected by opts and returns its name.
func openServeCache(ctx context.Context, opts serveOptions) (cache.Cache, string, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), "disabled", nil
	case opts.redis != "" && opts.mongo != "":
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "--redis and --mongo are mutually exclusive")
	case opts.redis != "":
		c, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return c, "redis", nil
	case opts.mongo != "":
		c, err := cache.NewMongoCache(ctx, opts.mongo, opts.mongoDB)
		if err != nil {
			return nil, "", fmt.Errorf("connect mongo: %w", err)
		}
		return c, "mongo", nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), "disabled", nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", err
	}
	return c, "file " + dir, nil
}
