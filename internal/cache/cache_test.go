package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"brandscope/internal/cache"
	"brandscope/internal/model"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.New(rdb, ttl), mr
}

func sampleInsights() *model.BrandInsights {
	return &model.BrandInsights{
		StoreURL:           "https://shop.test",
		BrandName:          "Acme",
		ProductCatalog:     []model.Product{{ID: "1", Title: "Shirt", Price: "20.00", Available: true}},
		HeroProducts:       []model.Product{},
		PrivacyPolicy:      model.NotFoundPolicy("Privacy Policy"),
		ReturnRefundPolicy: model.NotFoundPolicy("Refund Policy"),
		FAQs:               []model.FaqItem{},
		SocialHandles:      []model.SocialHandle{},
		ContactInfo:        model.EmptyContactInfo(),
		ImportantLinks:     map[string]string{},
		FetchedAt:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	c, mr := newCache(t, 10*time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "https://shop.test")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleInsights()))
	require.Equal(t, 10*time.Minute, mr.TTL(cache.Key("https://shop.test")))

	got, ok, err := c.Get(ctx, "https://shop.test")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Acme", got.BrandName)
	require.Equal(t, "20.00", got.ProductCatalog[0].Price)
	require.True(t, got.FetchedAt.Equal(sampleInsights().FetchedAt))

	require.NoError(t, c.Delete(ctx, "https://shop.test"))
	_, ok, err = c.Get(ctx, "https://shop.test")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_Expires(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleInsights()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "https://shop.test")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set(cache.Key("https://shop.test"), "{not json"))

	_, ok, err := c.Get(context.Background(), "https://shop.test")
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, mr.Exists(cache.Key("https://shop.test")))
}

func TestCache_DefaultTTL(t *testing.T) {
	c, mr := newCache(t, 0)
	require.NoError(t, c.Set(context.Background(), sampleInsights()))
	require.Equal(t, cache.DefaultTTL, mr.TTL(cache.Key("https://shop.test")))
}
