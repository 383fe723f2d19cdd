package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the server configuration loaded from the optional TOML file
// at ~/.config/scenesnap/config.toml. Flags override file values.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects the cache backend for the serve command.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// MongoConfig configures the snapshot archive. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Mongo: MongoConfig{Database: appName},
	}
}

// configPath returns the config file path using XDG standard
// (~/.config/scenesnap/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the TOML config from path, falling back to the default
// location when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	switch cfg.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return cfg, fmt.Errorf("invalid cache backend: %q (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}

	return cfg, nil
}
