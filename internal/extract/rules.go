// Package extract holds the structural extractors that turn fetched
// storefront pages into typed records.
//
// Storefront themes share naming conventions but no schema, so every
// extractor is driven by named Rules: a set of element tags plus a
// case-insensitive pattern matched against the class attribute. Rules
// are declared once per facet in the order they are tried. Extractors
// never return errors; a page without the expected structure yields an
// empty result.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule matches elements by tag name and class attribute.
type Rule struct {
	Name  string
	Tags  []string
	Class *regexp.Regexp
}

func newRule(name, class string, tags ...string) Rule {
	return Rule{
		Name:  name,
		Tags:  tags,
		Class: regexp.MustCompile(`(?i)` + class),
	}
}

// Matches reports whether the single element sel satisfies the rule.
func (r Rule) Matches(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	tag := goquery.NodeName(sel)
	found := false
	for _, t := range r.Tags {
		if t == tag {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	class, ok := sel.Attr("class")
	return ok && r.Class.MatchString(class)
}

// FindAll returns every descendant of root matching the rule, in
// document order.
func (r Rule) FindAll(root *goquery.Selection) *goquery.Selection {
	return root.Find(strings.Join(r.Tags, ",")).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && r.Class.MatchString(class)
	})
}

// Outermost returns the matches of FindAll that have no matching
// ancestor, so nested wrappers such as "product-card__info" inside a
// "product-card" are not reported twice.
func (r Rule) Outermost(root *goquery.Selection) *goquery.Selection {
	return r.FindAll(root).FilterFunction(func(_ int, s *goquery.Selection) bool {
		nested := false
		s.Parents().EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if r.Matches(p) {
				nested = true
				return false
			}
			return true
		})
		return !nested
	})
}

// First returns the first descendant of root matching the rule. The
// result has Length() == 0 when nothing matches.
func (r Rule) First(root *goquery.Selection) *goquery.Selection {
	return r.FindAll(root).First()
}

// LinkRule matches anchors by their visible text and/or href.
type LinkRule struct {
	Name string
	Text *regexp.Regexp
	Href *regexp.Regexp
}

func newLinkRule(name, text, href string) LinkRule {
	r := LinkRule{Name: name}
	if text != "" {
		r.Text = regexp.MustCompile(`(?i)` + text)
	}
	if href != "" {
		r.Href = regexp.MustCompile(`(?i)` + href)
	}
	return r
}

// Matches reports whether the anchor's text or href satisfies the rule.
func (r LinkRule) Matches(a *goquery.Selection) bool {
	if r.Text != nil && r.Text.MatchString(InlineText(a)) {
		return true
	}
	if r.Href != nil {
		if href, ok := a.Attr("href"); ok && r.Href.MatchString(href) {
			return true
		}
	}
	return false
}

// FirstHref returns the href of the first anchor under root that
// matches the rule and carries a non-empty href.
func (r LinkRule) FirstHref(root *goquery.Selection) (string, bool) {
	var out string
	root.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || !r.Matches(a) {
			return true
		}
		out = href
		return false
	})
	return out, out != ""
}
