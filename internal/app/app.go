package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/seed"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger
	http   *http.Server

	closers []func() error
}

// New bootstraps the logger, the configured store, the optional Redis category
// cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	repo, pinger, err := a.openStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		a.closers = append(a.closers, redisClient.Close)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable; category cache will fall back to the store")
		}
		repo = trivia.NewCachedRepository(repo, trivia.NewRedisCategoryCache(redisClient, cfg.Redis.CategoryTTL))
		logger.Info().Dur("ttl", cfg.Redis.CategoryTTL).Msg("redis category cache enabled")
	}

	svc := trivia.NewService(repo, logger, trivia.ServiceOptions{})
	handler := trivia.NewHTTPHandler(svc, logger)
	a.http = server.NewHTTPServer(cfg, logger, pinger, handler)

	return a, nil
}

// openStore connects the backend named by STORE_DRIVER. The returned Pinger is
// nil for the memory store.
func (a *Application) openStore(ctx context.Context) (trivia.Repository, server.Pinger, error) {
	switch a.cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, a.cfg.Postgres.PoolDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, func() error { pool.Close(); return nil })
		if err := pool.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		return repository.NewPostgresRepository(pool), pool, nil

	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(ctx, a.cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, repo.Close)
		if err := a.seed(ctx, repo); err != nil {
			return nil, nil, err
		}
		return repo, repo, nil

	case config.DriverMemory:
		repo := repository.NewMemoryRepository()
		if err := a.seed(ctx, repo); err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
}

func (a *Application) seed(ctx context.Context, target seed.Target) error {
	var (
		data seed.Data
		err  error
	)
	if path := a.cfg.Store.SeedFile; path != "" {
		data, err = seed.Load(path)
	} else {
		data, err = seed.Default()
	}
	if err != nil {
		return fmt.Errorf("load seed data: %w", err)
	}
	n, err := seed.Apply(ctx, target, data)
	if err != nil {
		return fmt.Errorf("apply seed data: %w", err)
	}
	a.logger.Info().Int("categories", len(data.Categories)).Int("questions", n).Msg("store seeded")
	return nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

// close releases resources in reverse acquisition order.
func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error().Err(err).Msg("resource close error")
		}
	}
	a.closers = nil
}
