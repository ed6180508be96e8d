package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/model"
	"brandscope/internal/scrapeutil"
	"brandscope/internal/storeurl"
)

var (
	contactLinkRule = newLinkRule("contact-link", `contact|reach us|get in touch`, "")
	addressRule     = newRule("address", `address`, "address", "div", "p", "span")
)

// ContactLink finds a homepage anchor whose text looks like a link to
// the contact page.
func ContactLink(doc *goquery.Document, base storeurl.StoreURL) (string, bool) {
	href, ok := contactLinkRule.FirstHref(doc.Selection)
	if !ok {
		return "", false
	}
	return base.Resolve(href)
}

// Footer returns the page's first <footer> element, which may be empty.
func Footer(doc *goquery.Document) *goquery.Selection {
	return doc.Find("footer").First()
}

// ContactFrom collects mailto: targets, tel: targets and address-like
// elements under sel. Each list is deduplicated in document order.
func ContactFrom(sel *goquery.Selection) model.ContactInfo {
	info := model.EmptyContactInfo()
	if sel == nil || sel.Length() == 0 {
		return info
	}

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			info.Emails = scrapeutil.AppendUnique(info.Emails, mailtoAddress(href))
		case strings.HasPrefix(lower, "tel:"):
			info.PhoneNumbers = scrapeutil.AppendUnique(info.PhoneNumbers, strings.TrimSpace(href[len("tel:"):]))
		}
	})

	addressRule.Outermost(sel).Each(func(_ int, el *goquery.Selection) {
		info.Addresses = scrapeutil.AppendUnique(info.Addresses, BlockText(el))
	})
	// A bare <address> element is an address regardless of its class.
	sel.Find("address").Each(func(_ int, el *goquery.Selection) {
		if el.ParentsFiltered("address").Length() > 0 || addressRule.Matches(el) {
			return
		}
		info.Addresses = scrapeutil.AppendUnique(info.Addresses, BlockText(el))
	})

	return info
}

func mailtoAddress(href string) string {
	addr := href[len("mailto:"):]
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	if unescaped, err := url.PathUnescape(addr); err == nil {
		addr = unescaped
	}
	return strings.TrimSpace(addr)
}

// MergeContact unions several ContactInfo values field by field,
// keeping first-seen order.
func MergeContact(infos ...model.ContactInfo) model.ContactInfo {
	out := model.EmptyContactInfo()
	for _, info := range infos {
		out.Emails = scrapeutil.AppendUnique(out.Emails, info.Emails...)
		out.PhoneNumbers = scrapeutil.AppendUnique(out.PhoneNumbers, info.PhoneNumbers...)
		out.Addresses = scrapeutil.AppendUnique(out.Addresses, info.Addresses...)
	}
	return out
}
