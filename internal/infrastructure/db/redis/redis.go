package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config describes one Redis endpoint. Addr is either host:port or a
// redis:// (rediss:// for TLS) URL; a URL's credentials and database win
// over Username, Password and DB.
type Config struct {
	Addr        string
	Username    string
	Password    string
	DB          int
	ClientName  string
	PingTimeout time.Duration
}

// Options translates cfg into go-redis options.
func (cfg Config) Options() (*redis.Options, error) {
	if strings.Contains(cfg.Addr, "://") {
		opts, err := redis.ParseURL(cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		opts.ClientName = cfg.ClientName
		return opts, nil
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	return &redis.Options{
		Addr:       cfg.Addr,
		Username:   cfg.Username,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: cfg.ClientName,
	}, nil
}

// Connect opens a client for cfg and pings it. The client is closed again
// when the ping fails.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return client, nil
}
