package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/tidwall/jsonc"
)

// State backends understood by the client.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Duration is a time.Duration written as "15s" in files and the environment.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ClientConfig configures the marketplace client core. Values come from an
// optional JSONC file; environment variables override the file.
type ClientConfig struct {
	APIURL        string   `json:"api_url"        env:"MARKET_API_URL, overwrite, default=http://localhost:8080/api"`
	StateBackend  string   `json:"state_backend"  env:"MARKET_STATE_BACKEND, overwrite, default=sqlite"`
	StatePath     string   `json:"state_path"     env:"MARKET_STATE_PATH, overwrite, default=marketplace-state.db"`
	RedisAddr     string   `json:"redis_addr"     env:"MARKET_REDIS_ADDR, overwrite, default=localhost:6379"`
	RedisPrefix   string   `json:"redis_prefix"   env:"MARKET_REDIS_PREFIX, overwrite, default=market:"`
	RedisPassword string   `json:"redis_password" env:"MARKET_REDIS_PASSWORD, overwrite"`
	LogLevel      string   `json:"log_level"      env:"MARKET_LOG_LEVEL, overwrite, default=warn"`
	HTTPTimeout   Duration `json:"http_timeout"   env:"MARKET_HTTP_TIMEOUT, overwrite, default=0s"`
}

// LoadClient reads path (when it exists) and applies environment overrides.
// A missing file is not an error.
func LoadClient(ctx context.Context, path string) (*ClientConfig, error) {
	return LoadClientFrom(ctx, path, envconfig.OsLookuper())
}

func LoadClientFrom(ctx context.Context, path string, l envconfig.Lookuper) (*ClientConfig, error) {
	var cfg ClientConfig

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read client config: %w", err)
		default:
			if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
				return nil, fmt.Errorf("parse client config %s: %w", path, err)
			}
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("client config env: %w", err)
	}

	switch cfg.StateBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("client config: unknown state backend %q", cfg.StateBackend)
	}
	return &cfg, nil
}
