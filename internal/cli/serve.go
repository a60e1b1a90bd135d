package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/routeworks/wayfind/internal/api"
	"github.com/routeworks/wayfind/pkg/cache"
	"github.com/routeworks/wayfind/pkg/planner"
	"github.com/routeworks/wayfind/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis URL for the shared route cache
	mongo   string // mongodb URI for the map store
	mongoDB string // mongodb database name
	noCache bool   // disable caching entirely
}

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wayfind HTTP API server",
		Long: `Run the wayfind HTTP API server.

Without flags the server plans against inline maps only, caching routes in
the local file cache. With --redis the route cache is shared across
instances; with --mongo maps are stored persistently and the /v1/maps
endpoints are enabled.

Examples:
  wayfind serve
  wayfind serve --addr :9090 --redis redis://localhost:6379/0
  wayfind serve --mongo mongodb://localhost:27017 --mongo-db wayfind`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for a shared route cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongodb URI for the persistent map store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "wayfind", "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the cache and store backends and runs the server until the
// context is canceled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	st, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	runner := planner.NewRunner(c, nil, logger)
	defer runner.Close()

	return api.NewServer(runner, st, logger).Run(ctx, opts.addr)
}

func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		c, err := cache.NewRedisCache(ctx, opts.redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	}
	return newCache(false), nil
}

func serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongo == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, opts.mongo, opts.mongoDB)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	return st, nil
}
