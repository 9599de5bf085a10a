// Package config loads the server configuration from YAML plus environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	StoreDriver   string `yaml:"storeDriver"`
	SQLitePath    string `yaml:"sqlitePath"`
	DatabaseURL   string `yaml:"databaseURL"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisPrefix   string `yaml:"redisPrefix"`

	PhotoDriver    string `yaml:"photoDriver"`
	PhotoDir       string `yaml:"photoDir"`
	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
	MaxPhotoBytes  int64  `yaml:"maxPhotoBytes"`

	SessionDriver     string `yaml:"sessionDriver"`
	SessionTTLMinutes int    `yaml:"sessionTtlMinutes"`

	TrustedProxyCIDRs        []string `yaml:"trustedProxyCidrs"`
	CORSOrigins              []string `yaml:"corsOrigins"`
	SubmitRateLimitPerMinute int      `yaml:"submitRateLimitPerMinute"`
}

// SessionTTL returns the configured session lifetime.
func (c FileConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Load reads config from path (defaults to config.yaml), applies defaults and
// environment overrides, then validates the result.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	applyEnv(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "data/condocare.db"
	}
	if cfg.PhotoDriver == "" {
		cfg.PhotoDriver = "file"
	}
	if cfg.PhotoDir == "" {
		cfg.PhotoDir = "data/photos"
	}
	if cfg.MaxPhotoBytes == 0 {
		cfg.MaxPhotoBytes = 5 << 20
	}
	if cfg.SessionDriver == "" {
		cfg.SessionDriver = "memory"
	}
	if cfg.SessionTTLMinutes == 0 {
		cfg.SessionTTLMinutes = 24 * 60
	}
}

func applyEnv(cfg *FileConfig) {
	setString := func(env string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	setString("CONDO_PORT", &cfg.Port)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("CONDO_STORE_DRIVER", &cfg.StoreDriver)
	setString("CONDO_SQLITE_PATH", &cfg.SQLitePath)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("REDIS_PASSWORD", &cfg.RedisPassword)
	setString("CONDO_REDIS_PREFIX", &cfg.RedisPrefix)
	setString("CONDO_PHOTO_DRIVER", &cfg.PhotoDriver)
	setString("CONDO_PHOTO_DIR", &cfg.PhotoDir)
	setString("MINIO_ENDPOINT", &cfg.MinioEndpoint)
	setString("MINIO_ACCESS_KEY", &cfg.MinioAccessKey)
	setString("MINIO_SECRET_KEY", &cfg.MinioSecretKey)
	setString("MINIO_BUCKET", &cfg.MinioBucket)
	setString("CONDO_SESSION_DRIVER", &cfg.SessionDriver)
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MinioUseSSL = b
		}
	}
	if v := os.Getenv("CONDO_MAX_PHOTO_BYTES"); v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			cfg.MaxPhotoBytes = n
		}
	}
	if v := os.Getenv("CONDO_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.SessionTTLMinutes = n
		}
	}
	if v := os.Getenv("CONDO_SUBMIT_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.SubmitRateLimitPerMinute = n
		}
	}
	if v := os.Getenv("CONDO_TRUSTED_PROXY_CIDRS"); v != "" {
		cfg.TrustedProxyCIDRs = splitCSV(v)
	}
	if v := os.Getenv("CONDO_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
}

func validateConfig(cfg FileConfig) error {
	switch cfg.StoreDriver {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(cfg.SQLitePath) == "" {
			return errors.New("config: sqlitePath is required for the sqlite store")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			return errors.New("config: redisAddr is required for the redis store (set in config.yaml or REDIS_ADDR)")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return errors.New("config: databaseURL is required for the postgres store (set in config.yaml or DATABASE_URL)")
		}
	default:
		return fmt.Errorf("config: unknown storeDriver %q", cfg.StoreDriver)
	}
	switch cfg.PhotoDriver {
	case "file":
	case "minio":
		if cfg.MinioEndpoint == "" || cfg.MinioBucket == "" {
			return errors.New("config: minioEndpoint and minioBucket are required for minio photos")
		}
	default:
		return fmt.Errorf("config: unknown photoDriver %q", cfg.PhotoDriver)
	}
	switch cfg.SessionDriver {
	case "memory":
	case "redis":
		if cfg.RedisAddr == "" {
			return errors.New("config: redisAddr is required for redis sessions")
		}
	default:
		return fmt.Errorf("config: unknown sessionDriver %q", cfg.SessionDriver)
	}
	if cfg.MaxPhotoBytes < 0 {
		return errors.New("config: maxPhotoBytes must be >= 0")
	}
	if cfg.SessionTTLMinutes < 0 {
		return errors.New("config: sessionTtlMinutes must be >= 0")
	}
	if cfg.SubmitRateLimitPerMinute < 0 {
		return errors.New("config: rate limits must be >= 0")
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
