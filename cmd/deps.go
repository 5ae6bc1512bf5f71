package main

import (
	"context"
	"fmt"

	"yatstats/internal/caching"
	"yatstats/internal/config"
	"yatstats/internal/metrics"
	"yatstats/internal/repositories"
	"yatstats/internal/services"
	"yatstats/pkg/database"
	"yatstats/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// deps holds the process-wide resources every command shares. Close releases
// them in reverse order of construction.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	pool    *pgxpool.Pool
	metrics *metrics.Manager
	cache   caching.ViewCache
	views   services.ViewService
	crests  services.CrestService
}

func loadDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := &deps{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		metrics: metrics.New(),
		cache:   caching.NewNoopViewCache(),
	}

	executor := database.NewExecutor(pool,
		database.WithQueryTimeout(cfg.QueryTimeout),
		database.WithQueryHook(d.metrics.QueryHook()),
	)

	viewOpts := []services.ViewServiceOption{
		services.WithViewMetrics(d.metrics),
		services.WithViewLogger(log.With("component", "views")),
	}
	if cfg.CacheEnabled() {
		cache, err := caching.NewRedisViewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("create view cache: %w", err)
		}
		d.cache = cache
		viewOpts = append(viewOpts, services.WithViewCache(d.cache, cfg.ViewCacheTTL))
	}
	d.views = services.NewViewService(
		repositories.NewTenantRepo(executor),
		repositories.NewStatsRepo(executor),
		viewOpts...,
	)

	var store services.MinioService
	if cfg.StorageEnabled() {
		store, err = services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("create object storage client: %w", err)
		}
	}
	d.crests = services.NewCrestService(store, services.CrestConfig{
		Bucket:      cfg.CrestBucket,
		Expiry:      cfg.CrestURLExpiry,
		Placeholder: cfg.CrestPlaceholder,
	})

	return d, nil
}

func (d *deps) Close() {
	if err := d.cache.Close(); err != nil {
		d.log.Warn("failed to close view cache", "error", err)
	}
	d.pool.Close()
	d.log.Sync()
}
