package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redirect-gateway/internal/logging"
	"redirect-gateway/redirect"
	"redirect-gateway/redirect/domain"
	"redirect-gateway/redirect/infra"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "redirector",
		Usage:  "redirects /<key> to https://<value> looked up in a key-value store",
		Flags:  flags(),
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "redirector: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := readConfig(c)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.logLevel, cfg.logFormat)
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lookup, closeLookup, err := openLookup(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLookup()

	h := redirect.NewRouter(redirect.RouterOptions{
		Options: redirect.Options{
			Lookup:      lookup,
			Logger:      logger,
			LogRequests: cfg.logRequests,
		},
		Concurrency: redirect.ConcurrencyOptions{
			Max:            cfg.concurrencyMax,
			RejectStatus:   http.StatusServiceUnavailable,
			AcquireTimeout: cfg.concurrencyTimeout,
		},
		RequestTimeout: cfg.requestTimeout,
		HealthPath:     cfg.healthPath,
		AccessLog:      cfg.accessLog,
	})

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("redirector listening", "addr", cfg.listenAddr, "store", cfg.store)
	logger.Info("limits", "concurrencyMax", cfg.concurrencyMax, "acquireTimeout", cfg.concurrencyTimeout, "requestTimeout", cfg.requestTimeout, "healthPath", cfg.healthPath)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// openLookup cria o store configurado. A função retornada libera conexões/watchers.
func openLookup(ctx context.Context, cfg config, logger *slog.Logger) (domain.Lookup, func(), error) {
	switch cfg.store {
	case storeRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping error: %w", err)
		}

		lookup := infra.NewRedisLookup(rdb, infra.WithKeyPrefix(cfg.redisKeyPrefix))
		return lookup, func() { _ = rdb.Close() }, nil

	case storeCloudflare:
		lookup := infra.NewCloudflareKVLookup(
			cfg.cfAccountID,
			cfg.cfNamespaceID,
			cfg.cfAPIToken,
			infra.WithCloudflareBaseURL(cfg.cfAPIURL),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := lookup.Ping(pingCtx)
		cancel()
		if err != nil {
			return nil, nil, err
		}
		return lookup, func() {}, nil

	case storeFile:
		lookup, err := infra.NewFileLookup(cfg.mappingFile, infra.WithFileLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("mapping loaded", "path", cfg.mappingFile, "keys", lookup.Len())

		if !cfg.mappingWatch {
			return lookup, func() {}, nil
		}

		watchCtx, stop := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := lookup.Watch(watchCtx); err != nil {
				logger.Warn("mapping watch stopped", "error", err)
			}
		}()
		return lookup, func() { stop(); <-done }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.store)
}
