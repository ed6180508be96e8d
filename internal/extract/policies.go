package extract

import (
	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/model"
	"brandscope/internal/storeurl"
)

// PolicyKind names a policy category.
type PolicyKind string

const (
	PolicyPrivacy PolicyKind = "privacy"
	PolicyRefund  PolicyKind = "refund"
)

type policySpec struct {
	title string
	paths []string
	link  LinkRule
}

var policySpecs = map[PolicyKind]policySpec{
	PolicyPrivacy: {
		title: "Privacy Policy",
		paths: []string{"/policies/privacy-policy", "/pages/privacy-policy"},
		link:  newLinkRule("privacy-link", `privacy`, `privacy-policy|privacy`),
	},
	PolicyRefund: {
		title: "Refund Policy",
		paths: []string{"/policies/refund-policy", "/policies/returns-policy", "/pages/return-policy", "/pages/refund-policy"},
		link:  newLinkRule("refund-link", `refund|returns?\b`, `refund-policy|return-policy|returns|refund`),
	},
}

var policyBodyRule = newRule("policy-body", `policy|content`, "div", "section")

// PolicyKinds lists the categories extracted for every store.
func PolicyKinds() []PolicyKind {
	return []PolicyKind{PolicyPrivacy, PolicyRefund}
}

// PolicyPaths returns the well-known candidate paths for kind, in the
// order they are tried.
func PolicyPaths(kind PolicyKind) []string {
	return append([]string(nil), policySpecs[kind].paths...)
}

// NotFoundPolicy returns the sentinel used when kind could not be
// located on the store.
func NotFoundPolicy(kind PolicyKind) model.Policy {
	return model.NotFoundPolicy(policyTitle(kind))
}

func policyTitle(kind PolicyKind) string {
	if spec, ok := policySpecs[kind]; ok {
		return spec.title
	}
	return "Policy"
}

// PolicyLink finds a homepage anchor pointing at the kind's policy page
// and returns its absolute URL.
func PolicyLink(doc *goquery.Document, kind PolicyKind, base storeurl.StoreURL) (string, bool) {
	spec, ok := policySpecs[kind]
	if !ok {
		return "", false
	}
	href, ok := spec.link.FirstHref(doc.Selection)
	if !ok {
		return "", false
	}
	return base.Resolve(href)
}

// PolicyContent builds a policy from a fetched policy page. The title
// comes from the page <title> when present; the body is the first
// div or section whose class looks like policy content.
func PolicyContent(doc *goquery.Document, kind PolicyKind, pageURL string, r Renderer) model.Policy {
	title := InlineText(doc.Find("title").First())
	if title == "" {
		title = policyTitle(kind)
	}
	return model.Policy{
		Title:   title,
		Content: r.Render(policyBodyRule.First(doc.Selection)),
		URL:     pageURL,
	}
}
