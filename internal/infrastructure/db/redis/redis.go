package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// Config describes the Redis instance backing the rate limiter.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the startup reachability check. Zero means the package
	// default.
	Timeout time.Duration
}

// Connect opens the client the rate limiter counts against and confirms the
// instance is reachable before the server starts taking traffic. An
// unreachable instance at boot is a deployment fault and the caller treats
// the error as fatal; transient failures after boot are absorbed by the
// limiter failing open instead.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
