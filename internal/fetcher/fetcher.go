// Package fetcher issues the GET requests of a single extraction run.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUnreachable reports a transport-level failure: DNS, connection
// refused or reset, TLS errors and timeouts. An HTTP error status is
// not an ErrUnreachable; it is returned as a Page instead.
var ErrUnreachable = errors.New("site unreachable")

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRedirects = 10
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Accept selects the representation requested from the server.
type Accept int

const (
	AcceptHTML Accept = iota
	AcceptJSON
)

func (a Accept) header() string {
	if a == AcceptJSON {
		return "application/json"
	}
	return "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"
}

// Options configures a Fetcher.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxRedirects int
	// Transport overrides the client's round tripper when set.
	Transport http.RoundTripper
}

// Page is the raw result of one GET.
type Page struct {
	URL    string
	Status int
	Body   []byte
}

// Available reports whether the page was served with status 200.
func (p *Page) Available() bool {
	return p != nil && p.Status == http.StatusOK
}

// Fetcher wraps a resty client whose connection pool is shared by all
// requests of one run. It is safe for concurrent use.
type Fetcher struct {
	client *resty.Client
}

// Open creates a Fetcher. Callers must Close it once the run has
// finished so that idle keep-alive connections are released.
func Open(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	client.SetHeader("User-Agent", userAgent)
	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}

	return &Fetcher{client: client}
}

// Fetch issues a GET for rawURL. A non-200 response is returned as a
// Page with Available() == false and a nil error; only transport
// failures produce an error, always wrapping ErrUnreachable.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, accept Accept) (*Page, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", accept.header()).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrUnreachable, rawURL, err)
	}

	return &Page{
		URL:    rawURL,
		Status: resp.StatusCode(),
		Body:   resp.Body(),
	}, nil
}

// Close releases idle connections held by the run's client.
func (f *Fetcher) Close() {
	f.client.GetClient().CloseIdleConnections()
}
