package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenesnap/scenesnap/internal/api"
	"github.com/scenesnap/scenesnap/pkg/cache"
	"github.com/scenesnap/scenesnap/pkg/pipeline"
	"github.com/scenesnap/scenesnap/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the snapshot HTTP API",
		Long: `Run the snapshot HTTP API.

The server exposes the pipeline over HTTP: POST /v1/snapshots serializes a
selection, and with ?persist=1 archives it for later retrieval via
GET /v1/snapshots/{id}.

Configuration is read from ~/.config/scenesnap/config.toml (cache backend,
Redis and MongoDB connections); flags override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configFile, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the configured backends and blocks until the context is
// canceled.
func (c *CLI) runServe(ctx context.Context, addr, configFile string, noCache bool) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	serverCache, err := c.newServerCache(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := c.newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(serverCache, nil, c.Logger)
	defer runner.Close()

	printInfo("Starting %s API", appName)
	printKeyValue("address", addr)
	printKeyValue("cache", cacheBackendName(cfg, noCache))
	printKeyValue("store", storeBackendName(cfg))

	server := api.NewServer(runner, st, c.Logger)
	return server.ListenAndServe(ctx, addr)
}

// newServerCache builds the cache backend selected by the config.
func (c *CLI) newServerCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newStore builds the snapshot archive: MongoDB when a URI is configured,
// otherwise in-memory.
func (c *CLI) newStore(ctx context.Context, cfg Config) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
}

func cacheBackendName(cfg Config, noCache bool) string {
	if noCache || cfg.Cache.Backend == "none" {
		return "none"
	}
	if cfg.Cache.Backend == "redis" {
		return "redis (" + cfg.Cache.RedisAddr + ")"
	}
	return "file"
}

func storeBackendName(cfg Config) string {
	if cfg.Mongo.URI == "" {
		return "memory"
	}
	return "mongodb (" + cfg.Mongo.Database + ")"
}
