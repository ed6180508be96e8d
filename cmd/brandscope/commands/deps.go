package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"brandscope/internal/cache"
	"brandscope/internal/config"
	"brandscope/internal/extract"
	"brandscope/internal/fetcher"
	"brandscope/internal/insights"
	"brandscope/internal/services"
	"brandscope/internal/store"
)

func newAggregator(cfg *config.Config, logger *slog.Logger) *insights.Aggregator {
	return insights.NewAggregator(insights.Options{
		Fetcher: fetcher.Options{
			Timeout:      cfg.FetchTimeout(),
			UserAgent:    cfg.Fetcher.UserAgent,
			MaxRedirects: cfg.Fetcher.MaxRedirects,
		},
		ContentFormat: extract.ContentFormat(cfg.Extract.ContentFormat),
		Logger:        logger,
	})
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn is not configured (set %s)", config.EnvDatabaseDSN)
	}
	return store.Open(cfg.Database.DSN)
}

// openRedis returns nil when no Redis URL is configured.
func openRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.URL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// newInsightsService wires the optional backends. Typed nils must not
// reach the service interfaces.
func newInsightsService(cfg *config.Config, agg services.Aggregator, st *store.Store, rdb *redis.Client, logger *slog.Logger) services.InsightsService {
	var repo services.Repository
	if st != nil {
		repo = st
	}
	var c services.Cache
	if rdb != nil {
		c = cache.New(rdb, cfg.CacheTTL())
	}
	return services.NewInsightsService(agg, repo, c, logger)
}
