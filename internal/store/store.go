package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sqlc-dev/pqtype"

	"brandscope/internal/model"
)

// ErrNotFound is returned when no insights are stored for a URL.
var ErrNotFound = errors.New("insights not found")

// Store wraps access to the brand_insights table.
type Store struct {
	DB *sql.DB
}

// New creates a new Store that uses a shared *sql.DB with pooling.
func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

// Open connects to Postgres through the pgx stdlib driver.
func Open(dsn string) (*Store, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return New(database), nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

const selectInsights = `SELECT store_url, brand_name, product_catalog, hero_products, privacy_policy,
	return_refund_policy, faqs, social_handles, contact_info, about_brand, important_links, fetched_at
FROM brand_insights
WHERE store_url = $1`

// GetInsights loads the record persisted for a normalized store URL.
func (s *Store) GetInsights(ctx context.Context, storeURL string) (*model.BrandInsights, error) {
	var (
		out                                  model.BrandInsights
		catalog, hero, privacy, refund, faqs []byte
		social, contact                      []byte
		links                                pqtype.NullRawMessage
	)

	err := s.DB.QueryRowContext(ctx, selectInsights, storeURL).Scan(
		&out.StoreURL, &out.BrandName, &catalog, &hero, &privacy,
		&refund, &faqs, &social, &contact, &out.AboutBrand, &links, &out.FetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select insights: %w", err)
	}

	columns := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"product_catalog", catalog, &out.ProductCatalog},
		{"hero_products", hero, &out.HeroProducts},
		{"privacy_policy", privacy, &out.PrivacyPolicy},
		{"return_refund_policy", refund, &out.ReturnRefundPolicy},
		{"faqs", faqs, &out.FAQs},
		{"social_handles", social, &out.SocialHandles},
		{"contact_info", contact, &out.ContactInfo},
	}
	for _, c := range columns {
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
	}

	out.ImportantLinks = map[string]string{}
	if links.Valid {
		if err := json.Unmarshal(links.RawMessage, &out.ImportantLinks); err != nil {
			return nil, fmt.Errorf("decode important_links: %w", err)
		}
	}
	out.FetchedAt = out.FetchedAt.UTC()

	return &out, nil
}

const upsertInsights = `INSERT INTO brand_insights (
	id, store_url, brand_name, product_catalog, hero_products, privacy_policy,
	return_refund_policy, faqs, social_handles, contact_info, about_brand, important_links, fetched_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (store_url) DO UPDATE SET
	brand_name = EXCLUDED.brand_name,
	product_catalog = EXCLUDED.product_catalog,
	hero_products = EXCLUDED.hero_products,
	privacy_policy = EXCLUDED.privacy_policy,
	return_refund_policy = EXCLUDED.return_refund_policy,
	faqs = EXCLUDED.faqs,
	social_handles = EXCLUDED.social_handles,
	contact_info = EXCLUDED.contact_info,
	about_brand = EXCLUDED.about_brand,
	important_links = EXCLUDED.important_links,
	fetched_at = EXCLUDED.fetched_at,
	updated_at = NOW()`

// UpsertInsights stores in, replacing any record for the same store URL.
func (s *Store) UpsertInsights(ctx context.Context, in *model.BrandInsights) error {
	if in == nil || in.StoreURL == "" {
		return errors.New("upsert insights: missing store url")
	}

	encoded := make([][]byte, 0, 7)
	for _, v := range []any{
		in.ProductCatalog, in.HeroProducts, in.PrivacyPolicy, in.ReturnRefundPolicy,
		in.FAQs, in.SocialHandles, in.ContactInfo,
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode insights: %w", err)
		}
		encoded = append(encoded, b)
	}

	var links pqtype.NullRawMessage
	if len(in.ImportantLinks) > 0 {
		b, err := json.Marshal(in.ImportantLinks)
		if err != nil {
			return fmt.Errorf("encode important_links: %w", err)
		}
		links = pqtype.NullRawMessage{RawMessage: b, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, upsertInsights,
		uuid.New(), in.StoreURL, in.BrandName,
		encoded[0], encoded[1], encoded[2], encoded[3], encoded[4], encoded[5], encoded[6],
		in.AboutBrand, links, in.FetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert insights: %w", err)
	}
	return nil
}

// DeleteInsights removes the record for storeURL and reports whether one
// existed.
func (s *Store) DeleteInsights(ctx context.Context, storeURL string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM brand_insights WHERE store_url = $1`, storeURL)
	if err != nil {
		return false, fmt.Errorf("delete insights: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete insights: %w", err)
	}
	return n > 0, nil
}

// DeleteInsightsOlderThan removes records fetched before cutoff and
// returns how many were deleted.
func (s *Store) DeleteInsightsOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM brand_insights WHERE fetched_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired insights: %w", err)
	}
	return res.RowsAffected()
}
