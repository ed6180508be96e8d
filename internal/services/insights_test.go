package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"brandscope/internal/insights"
	"brandscope/internal/model"
	"brandscope/internal/store"
)

type fakeAggregator struct {
	calls []string
	out   *model.BrandInsights
	err   error
}

func (f *fakeAggregator) Aggregate(_ context.Context, raw string) (*model.BrandInsights, error) {
	f.calls = append(f.calls, raw)
	if f.err != nil {
		return nil, f.err
	}
	out := *f.out
	out.StoreURL = raw
	return &out, nil
}

type fakeRepo struct {
	records   map[string]*model.BrandInsights
	getErr    error
	upsertErr error
	upserts   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*model.BrandInsights{}}
}

func (f *fakeRepo) GetInsights(_ context.Context, storeURL string) (*model.BrandInsights, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	in, ok := f.records[storeURL]
	if !ok {
		return nil, store.ErrNotFound
	}
	return in, nil
}

func (f *fakeRepo) UpsertInsights(_ context.Context, in *model.BrandInsights) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[in.StoreURL] = in
	return nil
}

func (f *fakeRepo) DeleteInsights(_ context.Context, storeURL string) (bool, error) {
	_, ok := f.records[storeURL]
	delete(f.records, storeURL)
	return ok, nil
}

type fakeCache struct {
	entries map[string]*model.BrandInsights
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*model.BrandInsights{}}
}

func (f *fakeCache) Get(_ context.Context, storeURL string) (*model.BrandInsights, bool, error) {
	in, ok := f.entries[storeURL]
	return in, ok, nil
}

func (f *fakeCache) Set(_ context.Context, in *model.BrandInsights) error {
	f.entries[in.StoreURL] = in
	return nil
}

func (f *fakeCache) Delete(_ context.Context, storeURL string) error {
	delete(f.entries, storeURL)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sample() *model.BrandInsights {
	return &model.BrandInsights{BrandName: "Acme", FetchedAt: time.Now().UTC()}
}

func TestInsightsService_MissAggregatesAndPersists(t *testing.T) {
	agg := &fakeAggregator{out: sample()}
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewInsightsService(agg, repo, cache, quietLogger())

	res, err := svc.Get(context.Background(), "www.Shop.test/", false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if res.Cached {
		t.Fatalf("expected a live result")
	}
	if len(agg.calls) != 1 || agg.calls[0] != "https://shop.test" {
		t.Fatalf("expected one aggregation for the normalized url, got %v", agg.calls)
	}
	if _, ok := repo.records["https://shop.test"]; !ok {
		t.Fatalf("expected result to be persisted under the normalized url")
	}
	if _, ok := cache.entries["https://shop.test"]; !ok {
		t.Fatalf("expected result to be cached")
	}

	res, err = svc.Get(context.Background(), "https://shop.test", false)
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if !res.Cached || len(agg.calls) != 1 {
		t.Fatalf("expected cached result without another aggregation, calls=%d", len(agg.calls))
	}
}

func TestInsightsService_StoreHitFillsCache(t *testing.T) {
	agg := &fakeAggregator{out: sample()}
	repo := newFakeRepo()
	repo.records["https://shop.test"] = &model.BrandInsights{StoreURL: "https://shop.test", BrandName: "Stored"}
	cache := newFakeCache()
	svc := NewInsightsService(agg, repo, cache, quietLogger())

	res, err := svc.Get(context.Background(), "shop.test", false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !res.Cached || res.Insights.BrandName != "Stored" {
		t.Fatalf("expected stored record, got %+v", res)
	}
	if len(agg.calls) != 0 {
		t.Fatalf("expected no aggregation on store hit")
	}
	if _, ok := cache.entries["https://shop.test"]; !ok {
		t.Fatalf("expected store hit to populate the cache")
	}
}

func TestInsightsService_RefreshBypassesLookups(t *testing.T) {
	agg := &fakeAggregator{out: sample()}
	repo := newFakeRepo()
	repo.records["https://shop.test"] = &model.BrandInsights{StoreURL: "https://shop.test", BrandName: "Stale"}
	svc := NewInsightsService(agg, repo, nil, quietLogger())

	res, err := svc.Get(context.Background(), "shop.test", true)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if res.Cached || res.Insights.BrandName != "Acme" {
		t.Fatalf("expected fresh result, got %+v", res)
	}
	if repo.records["https://shop.test"].BrandName != "Acme" {
		t.Fatalf("expected refresh to overwrite the stored record")
	}
}

func TestInsightsService_InvalidURLSkipsEverything(t *testing.T) {
	agg := &fakeAggregator{out: sample()}
	svc := NewInsightsService(agg, newFakeRepo(), newFakeCache(), quietLogger())

	_, err := svc.Get(context.Background(), "ftp://shop.test", false)
	if !errors.Is(err, insights.ErrInvalidURLFormat) {
		t.Fatalf("expected ErrInvalidURLFormat, got %v", err)
	}
	if len(agg.calls) != 0 {
		t.Fatalf("expected no aggregation for invalid url")
	}
}

func TestInsightsService_AggregationErrorPassesThrough(t *testing.T) {
	agg := &fakeAggregator{err: insights.ErrNoMeaningfulData}
	repo := newFakeRepo()
	svc := NewInsightsService(agg, repo, nil, quietLogger())

	_, err := svc.Get(context.Background(), "shop.test", false)
	if !errors.Is(err, insights.ErrNoMeaningfulData) {
		t.Fatalf("expected ErrNoMeaningfulData, got %v", err)
	}
	if repo.upserts != 0 {
		t.Fatalf("expected failed runs not to be persisted")
	}
}

func TestInsightsService_BackendFailuresDegrade(t *testing.T) {
	agg := &fakeAggregator{out: sample()}
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	repo.upsertErr = errors.New("connection refused")
	svc := NewInsightsService(agg, repo, nil, quietLogger())

	res, err := svc.Get(context.Background(), "shop.test", false)
	if err != nil {
		t.Fatalf("expected store failures to be tolerated, got %v", err)
	}
	if res.Cached || res.Insights == nil {
		t.Fatalf("expected live result, got %+v", res)
	}
	if repo.upserts != 1 {
		t.Fatalf("expected one persist attempt, got %d", repo.upserts)
	}
}

func TestInsightsService_Evict(t *testing.T) {
	repo := newFakeRepo()
	repo.records["https://shop.test"] = &model.BrandInsights{StoreURL: "https://shop.test"}
	cache := newFakeCache()
	cache.entries["https://shop.test"] = repo.records["https://shop.test"]
	svc := NewInsightsService(&fakeAggregator{out: sample()}, repo, cache, quietLogger())

	deleted, err := svc.Evict(context.Background(), "http://www.shop.test")
	if err != nil {
		t.Fatalf("Evict returned error: %v", err)
	}
	if deleted {
		t.Fatalf("expected http and https keys to be distinct")
	}

	deleted, err = svc.Evict(context.Background(), "shop.test")
	if err != nil {
		t.Fatalf("Evict returned error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected stored record to be deleted")
	}
	if _, ok := cache.entries["https://shop.test"]; ok {
		t.Fatalf("expected cache entry to be evicted")
	}
}
