package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var titleSuffix = regexp.MustCompile(`(?i)\s*(\||[-–—]\s*powered by)\s*shopify.*$`)

// BrandName derives the store's name from the homepage <title>.
func BrandName(doc *goquery.Document) string {
	title := InlineText(doc.Find("title").First())
	return titleSuffix.ReplaceAllString(title, "")
}
