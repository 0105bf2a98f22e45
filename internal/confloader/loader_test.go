package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Addr != "127.0.0.1:6379" {
		t.Fatalf("default addr = %q", cfg.Redis.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("default log level = %q", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wastate.yaml")
	data := []byte("redis:\n  addr: redis.internal:6380\n  db: 2\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Fatalf("addr = %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 2 {
		t.Fatalf("db = %d", cfg.Redis.DB)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wastate.yaml")
	if err := os.WriteFile(path, []byte("redis:\n  addr: from-file:6379\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("WASTATE_REDIS_ADDR", "from-env:6379")
	t.Setenv("WASTATE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Redis.Addr != "from-env:6379" {
		t.Fatalf("addr = %q, want env value", cfg.Redis.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("log level = %q, want env value", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
