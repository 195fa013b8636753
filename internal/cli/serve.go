package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/server"
)

// serveCommand creates the serve command for the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		prefix   string
		noCache  bool
		allow    []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Charts are cached in the local file cache, or in Redis when --redis is set so
that several instances share rendered artifacts. Keys written to Redis carry
the --prefix so one Redis database can hold several deployments.

Requests may name a remote dataset with "source". The server fetches it
itself, so only hosts given with --allow-host are accepted; without the flag
remote sources are refused. --allow-host '*' accepts any host and should only
be used where the server cannot reach internal addresses.`,
		Example: `  stackbar serve --addr :8080
  stackbar serve --redis redis://localhost:6379/0
  stackbar serve --allow-host data.example.com --allow-host raw.githubusercontent.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				store cache.Cache
				keyer cache.Keyer
				err   error
			)
			if redisURL != "" && !noCache {
				store, err = cache.NewRedisCache(ctx, redisURL)
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				keyer = cache.NewScopedKeyer(nil, prefix)
				c.Logger.Info("using redis cache", "prefix", prefix)
			} else {
				store, err = c.newCache(noCache)
				if err != nil {
					return err
				}
			}

			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()
			srv := server.New(runner, c.Logger)
			srv.AllowedHosts = allow
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache")
	cmd.Flags().StringVar(&prefix, "prefix", "stackbar:", "key prefix in the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringSliceVar(&allow, "allow-host", nil, "host remote dataset sources may be fetched from (repeatable, '*' for any)")
	return cmd
}
