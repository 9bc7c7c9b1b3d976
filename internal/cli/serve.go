package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/internal/server"
	"github.com/latt-dev/latt/pkg/cache"
	"github.com/latt-dev/latt/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lattice analysis HTTP API",
		Long: `Run the lattice analysis HTTP API.

The server accepts lattice text in request bodies and returns analysis
results as JSON. When a Redis address is configured, analysis results
are cached there so multiple instances share one cache; otherwise the
local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	store, err := c.serverCache(cmd)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Config, c.Logger)
	return srv.ListenAndServe(ctx)
}

// serverCache picks the cache backend for the server: Redis when
// configured, the local file cache otherwise.
func (c *CLI) serverCache(cmd *cobra.Command) (cache.Cache, error) {
	if c.Config.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", c.Config.Redis.Addr)
		return rc, nil
	}
	return c.newCache(false)
}
