package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the server-mode settings of tally.
type Config struct {
	// Listen is the HTTP listen address (host:port or :port).
	Listen string `mapstructure:"listen"`

	// Store selects the session store backend: "memory" or "redis".
	Store string `mapstructure:"store"`

	// SessionTTL bounds the lifetime of idle sessions ("30m", "24h").
	// Zero means sessions never expire.
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the connection settings for the Redis session store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Listen: ":8080",
		Store:  "memory",
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
// The file is decoded through a generic map so partially specified files and
// loosely typed values (e.g. quoted ports, duration strings) are accepted.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return cfg, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store {
	case "memory", "redis":
		return nil
	default:
		return fmt.Errorf("invalid config: unknown store %q (want memory or redis)", c.Store)
	}
}
