// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/scrapbook/internal/api"
	"github.com/taibuivan/scrapbook/internal/platform/config"
	"github.com/taibuivan/scrapbook/internal/platform/migration"
	pgstore "github.com/taibuivan/scrapbook/internal/platform/postgres"
	redisstore "github.com/taibuivan/scrapbook/internal/platform/redis"
	"github.com/taibuivan/scrapbook/internal/platform/sqlite"
	"github.com/taibuivan/scrapbook/internal/scrapbook"
)

// backend is the item store selected by STORE_DRIVER, migrated and
// optionally fronted by the Redis list cache.
type backend struct {
	repository scrapbook.Repository
	health     api.HealthDependencies
	closers    []func()
}

// Close releases connections in reverse order of opening.
func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackend connects the configured store, runs its migrations and wraps
// it with the list cache when REDIS_URL is set.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{health: api.HealthDependencies{StoreName: cfg.StoreDriver}}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		b.repository = scrapbook.NewMemoryRepository()

	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() {
			logger.Info("closing_postgres_pool")
			pool.Close()
		})

		if err := migration.RunPostgres(cfg.DatabaseURL, logger); err != nil {
			b.Close()
			return nil, err
		}

		b.repository = scrapbook.NewPostgresRepository(pool)
		b.health.Store = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() {
			logger.Info("closing_sqlite_database")
			if err := db.Close(); err != nil {
				logger.Error("sqlite_close_failed", slog.Any("error", err))
			}
		})

		if err := migration.RunSQLite(db, logger); err != nil {
			b.Close()
			return nil, err
		}

		b.repository = scrapbook.NewSQLiteRepository(db)
		b.health.Store = func(ctx context.Context) error { return sqlite.Ping(ctx, db) }

	default:
		return nil, fmt.Errorf("cli: unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisURL == "" {
		return b, nil
	}

	client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.closers = append(b.closers, func() {
		logger.Info("closing_redis_client")
		if err := client.Close(); err != nil {
			logger.Error("redis_close_failed", slog.Any("error", err))
		}
	})

	cache := scrapbook.NewRedisListCache(client, cfg.ListCacheTTL)
	b.repository = scrapbook.NewCachedRepository(b.repository, cache, logger)
	b.health.Cache = func(ctx context.Context) error { return redisstore.Ping(ctx, client) }

	return b, nil
}

// seedItems returns SEED_FILE when configured, the embedded set otherwise.
func seedItems(cfg *config.Config) ([]scrapbook.NewItem, error) {
	if cfg.SeedFile != "" {
		return scrapbook.LoadSeedFile(cfg.SeedFile)
	}
	return scrapbook.DefaultSeed()
}
