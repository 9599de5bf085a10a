// Package ratelimit throttles form submissions per client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether a request keyed by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLimiter is a fixed-window limiter shared by every process using the
// same Redis and prefix.
type RedisLimiter struct {
	limit  int
	window time.Duration
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a Redis-backed limiter.
func NewRedisLimiter(addr, password, prefix string, limit int, window time.Duration) (*RedisLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "condocare:ratelimit"
	}
	return &RedisLimiter{
		limit:  limit,
		window: window,
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		prefix: prefix,
		now:    time.Now,
	}, nil
}

// Allow fails closed: a Redis error denies the request.
func (l *RedisLimiter) Allow(key string) bool {
	windowMs := l.window.Milliseconds()
	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, normalizeKey(key), slot)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}

// Close releases the Redis connection pool.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

type window struct {
	slot  int64
	count int
}

// MemoryLimiter is a fixed-window limiter for a single process.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]window
}

// NewMemoryLimiter creates an in-process limiter.
func NewMemoryLimiter(limit int, w time.Duration) (*MemoryLimiter, error) {
	if limit <= 0 || w <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  w,
		now:     time.Now,
		windows: make(map[string]window),
	}, nil
}

func (l *MemoryLimiter) Allow(key string) bool {
	key = normalizeKey(key)
	slot := l.now().UnixMilli() / l.window.Milliseconds()
	l.mu.Lock()
	defer l.mu.Unlock()
	w := l.windows[key]
	if w.slot != slot {
		// Drop stale windows so the map does not grow with every client seen.
		for k, v := range l.windows {
			if v.slot != slot {
				delete(l.windows, k)
			}
		}
		w = window{slot: slot}
	}
	w.count++
	l.windows[key] = w
	return w.count <= l.limit
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	return key
}
