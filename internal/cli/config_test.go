package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Palette != "hot" {
		t.Errorf("Palette = %q, want %q", cfg.Palette, "hot")
	}
	if cfg.Width != 800 {
		t.Errorf("Width = %v, want 800", cfg.Width)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheBackendFile)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":8080")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
palette = "viridis"
width = 1200

[cache]
backend = "redis"
redis_addr = "redis.example:6379"

[serve]
addr = ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Palette != "viridis" {
		t.Errorf("Palette = %q, want %q", cfg.Palette, "viridis")
	}
	if cfg.Width != 1200 {
		t.Errorf("Width = %v, want 1200", cfg.Width)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, CacheBackendRedis)
	}
	if cfg.Cache.RedisAddr != "redis.example:6379" {
		t.Errorf("Cache.RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9090")
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `palette = "plasma"`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Palette != "plasma" {
		t.Errorf("Palette = %q, want %q", cfg.Palette, "plasma")
	}
	if cfg.Width != 800 {
		t.Errorf("Width = %v, want default 800", cfg.Width)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, CacheBackendFile)
	}
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unknown cache backend")
	}
}

func TestLoadConfigRejectsNegativeWidth(t *testing.T) {
	path := writeConfig(t, `width = -10`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject negative width")
	}
}

func TestLoadConfigOrDefaultMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfigOrDefault()
	if cfg.Palette != "hot" {
		t.Errorf("missing config file should yield defaults, got palette %q", cfg.Palette)
	}
}

func TestLoadConfigOrDefaultReadsFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`palette = "magma"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfigOrDefault()
	if cfg.Palette != "magma" {
		t.Errorf("Palette = %q, want %q", cfg.Palette, "magma")
	}
}
