package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
	if cfg.Mongo.URI != "" {
		t.Errorf("Mongo.URI = %q, want empty", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != appName {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Mongo.Database, appName)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	// Missing file falls back to defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default %q", cfg.Server.Addr, ":8080")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":9090"

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"
redis_db = 2

[mongo]
uri = "mongodb://localhost:27017"
database = "designs"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "redis.internal:6379")
	}
	if cfg.Cache.RedisDB != 2 {
		t.Errorf("Cache.RedisDB = %d, want 2", cfg.Cache.RedisDB)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q, want %q", cfg.Mongo.URI, "mongodb://localhost:27017")
	}
	if cfg.Mongo.Database != "designs" {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Mongo.Database, "designs")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
addr = ":3000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":3000")
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, "file")
	}
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "memcached"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should reject unknown cache backend")
	}
	if !strings.Contains(err.Error(), "memcached") {
		t.Errorf("error %q should name the invalid backend", err)
	}
}

func TestLoadConfigMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should fail on malformed TOML")
	}
}

func TestConfigPathXDG(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-config", appName, "config.toml")
	if path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}
