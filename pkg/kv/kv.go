package kv

import (
	"context"
	"fmt"
	"strings"
)

// Store is the persistent key-value store every collection lives in.
// Values are opaque strings; callers store JSON text.
type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove is idempotent: removing an absent key succeeds.
	Remove(ctx context.Context, key string) error
	// ClearAll removes every key owned by this store.
	ClearAll(ctx context.Context) error
	// Keys lists stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Driver        string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisPrefix   string
}

// Open builds the store named by cfg.Driver.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		return NewSQLiteStore(cfg.SQLitePath)
	case DriverRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix)
	case DriverPostgres:
		return NewGormStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
