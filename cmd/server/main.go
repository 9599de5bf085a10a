package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"condocare/internal/app"
	"condocare/internal/config"
	"condocare/internal/ratelimit"
	"condocare/internal/server"
	"condocare/internal/util"
	"condocare/pkg/kv"
	"condocare/pkg/session"
	"condocare/pkg/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}
	path := os.Getenv("CONDO_CONFIG")
	if path == "" {
		path = config.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	if cfg.StoreDriver == kv.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			log.Fatalf("failed to create data dir: %v", err)
		}
	}
	store, err := kv.Open(kv.Config{
		Driver:        cfg.StoreDriver,
		SQLitePath:    cfg.SQLitePath,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisPrefix:   cfg.RedisPrefix,
	})
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	closeOnExit(logger, "store", store)

	var photos storage.PhotoStore
	switch cfg.PhotoDriver {
	case "minio":
		photos, err = storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		photos, err = storage.NewFileStore(cfg.PhotoDir)
	}
	if err != nil {
		log.Fatalf("failed to init photo store: %v", err)
	}

	var sessions session.Store = session.NewMemoryStore(cfg.SessionTTL())
	if cfg.SessionDriver == "redis" {
		rs := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, "", cfg.SessionTTL())
		closeOnExit(logger, "sessions", rs)
		sessions = rs
	}

	var limiter ratelimit.Limiter
	if cfg.SubmitRateLimitPerMinute > 0 {
		if cfg.RedisAddr != "" {
			rl, err := ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, "", cfg.SubmitRateLimitPerMinute, time.Minute)
			if err != nil {
				log.Fatalf("failed to init rate limiter: %v", err)
			}
			closeOnExit(logger, "rate limiter", rl)
			limiter = rl
		} else {
			ml, err := ratelimit.NewMemoryLimiter(cfg.SubmitRateLimitPerMinute, time.Minute)
			if err != nil {
				log.Fatalf("failed to init rate limiter: %v", err)
			}
			limiter = ml
		}
	}

	trusted, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		log.Fatalf("invalid trustedProxyCidrs: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:         store,
		Photos:        photos,
		Sessions:      sessions,
		Logger:        logger,
		MaxPhotoBytes: cfg.MaxPhotoBytes,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:            appCore,
		Limiter:        limiter,
		TrustedProxies: trusted,
		CORSOrigins:    cfg.CORSOrigins,
		MaxPhotoBytes:  cfg.MaxPhotoBytes,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	slog.Info("server listening", "addr", addr, "store", cfg.StoreDriver, "photos", cfg.PhotoDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
	runClosers()
}

var closers []func()

func closeOnExit(logger *slog.Logger, name string, v any) {
	c, ok := v.(io.Closer)
	if !ok {
		return
	}
	closers = append(closers, func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "component", name, "err", err)
		}
	})
}

func runClosers() {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}
