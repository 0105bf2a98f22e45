// Package confloader loads wastatectl configuration from a YAML file and
// WASTATE_-prefixed environment variables. Environment variables override
// file values; both override built-in defaults.
package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WASTATE_"

// Config is the wastatectl configuration.
type Config struct {
	Redis RedisConfig `koanf:"redis"`
	Log   LogConfig   `koanf:"log"`
}

// RedisConfig locates the backing Redis instance.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// LogConfig configures diagnostic output.
type LogConfig struct {
	Level string `koanf:"level"`
}

// Load reads configuration from the optional YAML file at path, then from
// the environment. WASTATE_REDIS_ADDR maps to redis.addr and so on.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
		Log:   LogConfig{Level: "info"},
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	transform := func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "_", ".")
	}
	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
