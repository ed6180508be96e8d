package scrapeutil

import (
	"net/url"
	"regexp"
	"strings"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// ResolveLink resolves href against base and returns an absolute HTTP(S)
// URL with the fragment removed. Empty, fragment-only and non-HTTP
// references (mailto:, tel:, javascript:) are rejected.
func ResolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	linkURL, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if !linkURL.IsAbs() {
		if base == nil {
			return "", false
		}
		linkURL = base.ResolveReference(linkURL)
	}
	if linkURL.Scheme != "http" && linkURL.Scheme != "https" {
		return "", false
	}
	linkURL.Fragment = ""
	return linkURL.String(), true
}

// NormalizeSpace trims s and collapses internal whitespace runs into a
// single space.
func NormalizeSpace(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// AppendUnique appends values to dst, skipping empty strings and values
// already present. Insertion order is preserved.
func AppendUnique(dst []string, values ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(values))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
