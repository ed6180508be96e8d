package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brandscope/internal/insights"
	"brandscope/internal/metrics"
	"brandscope/internal/model"
	"brandscope/internal/store"
	"brandscope/internal/storeurl"
)

// Aggregator runs a live extraction pass.
type Aggregator interface {
	Aggregate(ctx context.Context, raw string) (*model.BrandInsights, error)
}

// Repository is the durable record of previous extractions.
type Repository interface {
	GetInsights(ctx context.Context, storeURL string) (*model.BrandInsights, error)
	UpsertInsights(ctx context.Context, in *model.BrandInsights) error
	DeleteInsights(ctx context.Context, storeURL string) (bool, error)
}

// Cache is a short-lived copy of Repository contents.
type Cache interface {
	Get(ctx context.Context, storeURL string) (*model.BrandInsights, bool, error)
	Set(ctx context.Context, in *model.BrandInsights) error
	Delete(ctx context.Context, storeURL string) error
}

// InsightsResult wraps the record together with where it came from.
type InsightsResult struct {
	Insights *model.BrandInsights
	Cached   bool
}

// InsightsService answers insight lookups: Redis first, then Postgres,
// and a live extraction only when neither has the store. Fresh results
// are written back to both.
type InsightsService interface {
	Get(ctx context.Context, raw string, refresh bool) (*InsightsResult, error)
	Evict(ctx context.Context, raw string) (bool, error)
}

type insightsService struct {
	agg    Aggregator
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

// NewInsightsService constructs an InsightsService. repo and cache are
// optional; pass nil to run without them.
func NewInsightsService(agg Aggregator, repo Repository, cache Cache, logger *slog.Logger) InsightsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &insightsService{agg: agg, repo: repo, cache: cache, logger: logger}
}

func normalizeKey(raw string) (string, error) {
	u, err := storeurl.Normalize(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", insights.ErrInvalidURLFormat, err)
	}
	return u.String(), nil
}

func (s *insightsService) Get(ctx context.Context, raw string, refresh bool) (*InsightsResult, error) {
	key, err := normalizeKey(raw)
	if err != nil {
		return nil, err
	}

	if !refresh {
		if in, ok := s.lookup(ctx, key); ok {
			return &InsightsResult{Insights: in, Cached: true}, nil
		}
	}

	in, err := s.agg.Aggregate(ctx, key)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, in)

	return &InsightsResult{Insights: in, Cached: false}, nil
}

// lookup checks the cache and then the repository. Backend errors are
// logged and treated as misses.
func (s *insightsService) lookup(ctx context.Context, key string) (*model.BrandInsights, bool) {
	if s.cache != nil {
		in, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("cache lookup failed", "store_url", key, "error", err)
		}
		metrics.RecordCacheLookup("redis", ok)
		if ok {
			return in, true
		}
	}

	if s.repo != nil {
		in, err := s.repo.GetInsights(ctx, key)
		switch {
		case err == nil:
			metrics.RecordCacheLookup("store", true)
			if s.cache != nil {
				if err := s.cache.Set(ctx, in); err != nil {
					s.logger.Warn("cache fill failed", "store_url", key, "error", err)
				}
			}
			return in, true
		case errors.Is(err, store.ErrNotFound):
			metrics.RecordCacheLookup("store", false)
		default:
			metrics.RecordCacheLookup("store", false)
			s.logger.Warn("store lookup failed", "store_url", key, "error", err)
		}
	}

	return nil, false
}

// persist writes a fresh result. Failures are logged; the caller still
// gets the result.
func (s *insightsService) persist(ctx context.Context, in *model.BrandInsights) {
	if s.repo != nil {
		if err := s.repo.UpsertInsights(ctx, in); err != nil {
			s.logger.Error("persist insights failed", "store_url", in.StoreURL, "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, in); err != nil {
			s.logger.Warn("cache insights failed", "store_url", in.StoreURL, "error", err)
		}
	}
}

// Evict removes any stored record for raw and reports whether the
// repository held one.
func (s *insightsService) Evict(ctx context.Context, raw string) (bool, error) {
	key, err := normalizeKey(raw)
	if err != nil {
		return false, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, key); err != nil {
			return false, err
		}
	}
	if s.repo == nil {
		return false, nil
	}
	return s.repo.DeleteInsights(ctx, key)
}
