package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/storeurl"
)

var testBase = storeurl.MustNormalize("https://shop.test")

func mustDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}
