// Package storeurl canonicalizes user-supplied storefront URLs into the
// form used both as the fetch base and as the persistence key.
package storeurl

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"brandscope/internal/scrapeutil"
)

// ErrInvalidURL is returned when the input cannot be turned into an
// absolute HTTP(S) URL with a host.
var ErrInvalidURL = errors.New("invalid store url")

var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// StoreURL is a normalized absolute store URL. The zero value is not
// valid; obtain one through Normalize.
type StoreURL struct {
	u *url.URL
}

// Normalize converts raw into a StoreURL. A missing scheme defaults to
// https, leading "www." labels are removed from the host, the host is
// lowercased, and trailing slashes and fragments are dropped. The
// function is idempotent: Normalize(Normalize(x).String()) == Normalize(x).
func Normalize(raw string) (StoreURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StoreURL{}, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	if !schemePrefix.MatchString(raw) {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return StoreURL{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return StoreURL{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	for strings.HasPrefix(host, "www.") {
		host = strings.TrimPrefix(host, "www.")
	}
	if host == "" || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") {
		return StoreURL{}, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if port := parsed.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		// IPv6 literal
		host = "[" + host + "]"
	}

	out := &url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     strings.TrimRight(parsed.Path, "/"),
		RawQuery: parsed.RawQuery,
	}

	return StoreURL{u: out}, nil
}

// MustNormalize is like Normalize but panics on error. It is intended
// for tests and constants.
func MustNormalize(raw string) StoreURL {
	s, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the canonical string form used as the cache key.
func (s StoreURL) String() string {
	if s.u == nil {
		return ""
	}
	return s.u.String()
}

// IsZero reports whether s was never normalized.
func (s StoreURL) IsZero() bool {
	return s.u == nil
}

// Domain returns the bare host without port.
func (s StoreURL) Domain() string {
	if s.u == nil {
		return ""
	}
	return s.u.Hostname()
}

// URL returns a copy of the underlying URL.
func (s StoreURL) URL() *url.URL {
	if s.u == nil {
		return nil
	}
	cp := *s.u
	return &cp
}

// Resolve resolves ref against the store URL. Absolute paths such as
// "/products.json" resolve against the host root.
func (s StoreURL) Resolve(ref string) (string, bool) {
	return scrapeutil.ResolveLink(s.u, ref)
}
