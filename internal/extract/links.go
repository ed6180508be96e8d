package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/storeurl"
)

// ImportantLinkLabels is the vocabulary reported in the important
// links mapping.
var ImportantLinkLabels = []string{
	"track order",
	"order tracking",
	"contact us",
	"blog",
	"help",
	"support",
	"size guide",
}

var importantLinkRules = func() []LinkRule {
	rules := make([]LinkRule, 0, len(ImportantLinkLabels))
	for _, label := range ImportantLinkLabels {
		rules = append(rules, newLinkRule(label, regexp.QuoteMeta(label), ""))
	}
	return rules
}()

// ImportantLinks maps each vocabulary label to the first homepage
// anchor whose text contains it. Labels without a match are omitted.
func ImportantLinks(doc *goquery.Document, base storeurl.StoreURL) map[string]string {
	out := make(map[string]string)
	for _, rule := range importantLinkRules {
		href, ok := rule.FirstHref(doc.Selection)
		if !ok {
			continue
		}
		if abs, ok := base.Resolve(href); ok {
			out[rule.Name] = abs
		}
	}
	return out
}
