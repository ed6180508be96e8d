// Package insights runs one extraction pass over a storefront and
// assembles the BrandInsights record.
package insights

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"brandscope/internal/extract"
	"brandscope/internal/fetcher"
	"brandscope/internal/metrics"
	"brandscope/internal/model"
	"brandscope/internal/storeurl"
)

// Facet names used in logs and metrics.
const (
	FacetProductCatalog = "product_catalog"
	FacetHeroProducts   = "hero_products"
	FacetPrivacyPolicy  = "privacy_policy"
	FacetRefundPolicy   = "return_refund_policy"
	FacetFAQs           = "faqs"
	FacetSocialHandles  = "social_handles"
	FacetContactInfo    = "contact_info"
	FacetAboutBrand     = "about_brand"
	FacetImportantLinks = "important_links"
)

// Options configures an Aggregator.
type Options struct {
	Fetcher       fetcher.Options
	ContentFormat extract.ContentFormat
	Logger        *slog.Logger
	// Now is used for FetchedAt; defaults to time.Now.
	Now func() time.Time
}

// Aggregator turns a store URL into BrandInsights. It holds no state
// between calls and is safe for concurrent use.
type Aggregator struct {
	opts   Options
	logger *slog.Logger
}

func NewAggregator(opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{opts: opts, logger: logger}
}

// session carries what the facet tasks of one run share: the run's
// fetcher, the normalized base and the parsed homepage. All of it is
// read-only once the tasks start.
type session struct {
	fetcher  *fetcher.Fetcher
	base     storeurl.StoreURL
	home     *goquery.Document
	renderer extract.Renderer
	logger   *slog.Logger
}

// Aggregate fetches the homepage of raw, runs every facet task
// concurrently and merges the results. Only ErrInvalidURLFormat,
// ErrSiteUnreachable and ErrNoMeaningfulData are returned, or the
// context's error when ctx ends mid-run; facet failures degrade to
// empty values.
func (a *Aggregator) Aggregate(ctx context.Context, raw string) (*model.BrandInsights, error) {
	started := time.Now()
	r := newRun()

	result, err := a.aggregate(ctx, raw, r)
	durationMs := time.Since(started).Milliseconds()
	outcome := Outcome(err)
	metrics.RecordAggregation(outcome, durationMs)

	if err != nil {
		_ = r.advance(StateFailed)
		a.logger.Info("aggregation failed",
			"input", raw,
			"outcome", outcome,
			"duration_ms", durationMs,
			"error", err,
		)
		return nil, err
	}

	_ = r.advance(StateComplete)
	a.logger.Info("aggregation complete",
		"store_url", result.StoreURL,
		"products", len(result.ProductCatalog),
		"hero_products", len(result.HeroProducts),
		"duration_ms", durationMs,
		"outcome", outcome,
	)
	return result, nil
}

func (a *Aggregator) aggregate(ctx context.Context, raw string, r *run) (*model.BrandInsights, error) {
	base, err := storeurl.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURLFormat, err)
	}

	f := fetcher.Open(a.opts.Fetcher)
	defer f.Close()

	homePage, err := f.Fetch(ctx, base.String(), fetcher.AcceptHTML)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch homepage: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrSiteUnreachable, err)
	}
	if !homePage.Available() {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrSiteUnreachable, base, homePage.Status)
	}
	home, err := goquery.NewDocumentFromReader(bytes.NewReader(homePage.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse homepage: %w", ErrSiteUnreachable, err)
	}
	if err := r.advance(StateHomepageFetched); err != nil {
		return nil, err
	}

	s := &session{
		fetcher:  f,
		base:     base,
		home:     home,
		renderer: extract.NewRenderer(a.opts.ContentFormat, base.Domain()),
		logger:   a.logger.With("url", base.String()),
	}

	var (
		catalog Facet[[]model.Product]
		hero    Facet[[]model.Product]
		privacy Facet[model.Policy]
		refund  Facet[model.Policy]
		faqs    Facet[[]model.FaqItem]
		social  Facet[[]model.SocialHandle]
		contact Facet[model.ContactInfo]
		about   Facet[string]
		links   Facet[map[string]string]
	)

	// Tasks never return an error, so Wait is only the join point and a
	// slow facet never cancels its siblings.
	var g errgroup.Group
	g.Go(func() error { catalog = s.productCatalog(ctx); return nil })
	g.Go(func() error { hero = s.heroProducts(); return nil })
	g.Go(func() error { privacy = s.policy(ctx, extract.PolicyPrivacy); return nil })
	g.Go(func() error { refund = s.policy(ctx, extract.PolicyRefund); return nil })
	g.Go(func() error { faqs = s.faqs(ctx); return nil })
	g.Go(func() error { social = s.socialHandles(); return nil })
	g.Go(func() error { contact = s.contactInfo(ctx); return nil })
	g.Go(func() error { about = s.aboutBrand(ctx); return nil })
	g.Go(func() error { links = s.importantLinks(); return nil })
	_ = g.Wait()

	// Facets that lost their requests to cancellation look like misses;
	// none of them can be trusted.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", base, err)
	}

	if err := r.advance(StateFacetsJoined); err != nil {
		return nil, err
	}

	recordFacets(map[string]bool{
		FacetProductCatalog: catalog.Found,
		FacetHeroProducts:   hero.Found,
		FacetPrivacyPolicy:  privacy.Found,
		FacetRefundPolicy:   refund.Found,
		FacetFAQs:           faqs.Found,
		FacetSocialHandles:  social.Found,
		FacetContactInfo:    contact.Found,
		FacetAboutBrand:     about.Found,
		FacetImportantLinks: links.Found,
	})

	if !catalog.Found && !hero.Found {
		return nil, fmt.Errorf("%w: %s has no product feed or homepage products", ErrNoMeaningfulData, base)
	}

	return &model.BrandInsights{
		StoreURL:           base.String(),
		BrandName:          extract.BrandName(home),
		ProductCatalog:     catalog.Or([]model.Product{}),
		HeroProducts:       hero.Or([]model.Product{}),
		PrivacyPolicy:      privacy.Or(extract.NotFoundPolicy(extract.PolicyPrivacy)),
		ReturnRefundPolicy: refund.Or(extract.NotFoundPolicy(extract.PolicyRefund)),
		FAQs:               faqs.Or([]model.FaqItem{}),
		SocialHandles:      social.Or([]model.SocialHandle{}),
		ContactInfo:        contact.Or(model.EmptyContactInfo()),
		AboutBrand:         about.Or(""),
		ImportantLinks:     links.Or(map[string]string{}),
		FetchedAt:          a.opts.Now().UTC(),
	}, nil
}

func recordFacets(found map[string]bool) {
	for name, ok := range found {
		metrics.RecordFacet(name, ok)
	}
}

// page fetches ref (a path or absolute URL) and parses it as HTML.
// Anything but a 200 is reported as not found.
func (s *session) page(ctx context.Context, facet, ref string) (*goquery.Document, string, bool) {
	pageURL, ok := s.base.Resolve(ref)
	if !ok {
		return nil, "", false
	}
	p, err := s.fetcher.Fetch(ctx, pageURL, fetcher.AcceptHTML)
	if err != nil {
		s.logger.Debug("facet fetch failed", "facet", facet, "page", pageURL, "err", err)
		return nil, pageURL, false
	}
	if !p.Available() {
		s.logger.Debug("facet page unavailable", "facet", facet, "page", pageURL, "status", p.Status)
		return nil, pageURL, false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		s.logger.Debug("facet parse failed", "facet", facet, "page", pageURL, "err", err)
		return nil, pageURL, false
	}
	return doc, pageURL, true
}

func (s *session) productCatalog(ctx context.Context) Facet[[]model.Product] {
	feedURL, ok := s.base.Resolve(extract.ProductFeedPath)
	if !ok {
		return NotFound[[]model.Product]()
	}
	p, err := s.fetcher.Fetch(ctx, feedURL, fetcher.AcceptJSON)
	if err != nil {
		s.logger.Debug("facet fetch failed", "facet", FacetProductCatalog, "page", feedURL, "err", err)
		return NotFound[[]model.Product]()
	}
	if !p.Available() {
		s.logger.Debug("facet page unavailable", "facet", FacetProductCatalog, "page", feedURL, "status", p.Status)
		return NotFound[[]model.Product]()
	}
	products := extract.Products(p.Body, s.base)
	return foundIf(products, len(products) > 0)
}

func (s *session) heroProducts() Facet[[]model.Product] {
	products := extract.HeroProducts(s.home, s.base)
	return foundIf(products, len(products) > 0)
}

// policy tries the well-known paths first and the homepage link second.
// The first page answering 200 is used even if its body is empty.
func (s *session) policy(ctx context.Context, kind extract.PolicyKind) Facet[model.Policy] {
	facet := FacetPrivacyPolicy
	if kind == extract.PolicyRefund {
		facet = FacetRefundPolicy
	}

	for _, path := range extract.PolicyPaths(kind) {
		if doc, pageURL, ok := s.page(ctx, facet, path); ok {
			return Found(extract.PolicyContent(doc, kind, pageURL, s.renderer))
		}
	}

	href, ok := extract.PolicyLink(s.home, kind, s.base)
	if !ok {
		return NotFound[model.Policy]()
	}
	if doc, pageURL, ok := s.page(ctx, facet, href); ok {
		return Found(extract.PolicyContent(doc, kind, pageURL, s.renderer))
	}
	return NotFound[model.Policy]()
}

// faqs parses the first well-known FAQ path answering 200. The homepage
// link is followed only when none of them does.
func (s *session) faqs(ctx context.Context) Facet[[]model.FaqItem] {
	for _, path := range extract.FAQPaths() {
		if doc, _, ok := s.page(ctx, FacetFAQs, path); ok {
			items := extract.FAQs(doc, s.renderer)
			return foundIf(items, len(items) > 0)
		}
	}

	href, ok := extract.FAQLink(s.home, s.base)
	if !ok {
		return NotFound[[]model.FaqItem]()
	}
	if doc, _, ok := s.page(ctx, FacetFAQs, href); ok {
		items := extract.FAQs(doc, s.renderer)
		return foundIf(items, len(items) > 0)
	}
	return NotFound[[]model.FaqItem]()
}

func (s *session) socialHandles() Facet[[]model.SocialHandle] {
	handles := extract.SocialHandles(s.home)
	return foundIf(handles, len(handles) > 0)
}

// contactInfo merges the contact page, when linked, with the homepage
// footer.
func (s *session) contactInfo(ctx context.Context) Facet[model.ContactInfo] {
	var fromPage model.ContactInfo
	if href, ok := extract.ContactLink(s.home, s.base); ok {
		if doc, _, ok := s.page(ctx, FacetContactInfo, href); ok {
			fromPage = extract.ContactFrom(doc.Selection)
		}
	}
	fromFooter := extract.ContactFrom(extract.Footer(s.home))

	info := extract.MergeContact(fromPage, fromFooter)
	found := len(info.Emails)+len(info.PhoneNumbers)+len(info.Addresses) > 0
	return foundIf(info, found)
}

func (s *session) aboutBrand(ctx context.Context) Facet[string] {
	href, ok := extract.AboutLink(s.home, s.base)
	if !ok {
		return NotFound[string]()
	}
	doc, _, ok := s.page(ctx, FacetAboutBrand, href)
	if !ok {
		return NotFound[string]()
	}
	text := extract.AboutText(doc, s.renderer)
	return foundIf(text, text != "")
}

func (s *session) importantLinks() Facet[map[string]string] {
	links := extract.ImportantLinks(s.home, s.base)
	return foundIf(links, len(links) > 0)
}
