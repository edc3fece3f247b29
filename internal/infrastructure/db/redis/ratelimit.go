package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per caller in fixed time windows backed
// by Redis, so the bound holds across replicas sharing the same instance.
// Key format: ratelimit:<key>:<window_index>
type FixedWindowLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
}

// NewFixedWindowLimiter creates a limiter allowing max requests per window.
func NewFixedWindowLimiter(client *redis.Client, window time.Duration, max int64) *FixedWindowLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 100
	}
	return &FixedWindowLimiter{client: client, window: window, max: max}
}

// Allow reports whether the caller identified by key may proceed in the
// current window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.bucketKey(key, time.Now())

	n, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	// First hit in the window owns setting the expiry.
	if n == 1 {
		if err := l.client.Expire(ctx, bucket, l.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	return n <= l.max, nil
}

// bucketKey indexes windows in nanoseconds so sub-second windows divide by a
// non-zero quantum.
func (l *FixedWindowLimiter) bucketKey(key string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", key, now.UnixNano()/l.window.Nanoseconds())
}
