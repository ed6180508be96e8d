package extract

import (
	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/storeurl"
)

var (
	aboutLinkRule = newLinkRule("about-link", `about us|our story|about`, "")
	aboutBodyRule = newRule("about-body", `content|about-text`, "div", "section")
)

// AboutLink finds a homepage anchor whose text points at the brand's
// about page.
func AboutLink(doc *goquery.Document, base storeurl.StoreURL) (string, bool) {
	href, ok := aboutLinkRule.FirstHref(doc.Selection)
	if !ok {
		return "", false
	}
	return base.Resolve(href)
}

// AboutText returns the body of the first content-like element on an
// about page, or "" when none is present.
func AboutText(doc *goquery.Document, r Renderer) string {
	return r.Render(aboutBodyRule.First(doc.Selection))
}
