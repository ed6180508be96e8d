package extract

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"brandscope/internal/model"
	"brandscope/internal/storeurl"
)

var (
	heroCardRule  = newRule("hero-card", `product-card|featured-product|product-item`, "div", "li", "article")
	heroTitleRule = newRule("hero-title", `title|name`, "h2", "h3", "h4", "a")
	heroPriceRule = newRule("hero-price", `price`, "span")
)

// HeroProducts scans homepage markup for product cards. A card becomes
// a product only when both a title and a price element are present.
// Homepage cards carry no stock signal, so Available is always true.
//
// Cards nest both ways: a "product-card" may hold a "product-card__info"
// that also carries a title and price, and a "featured-products" grid
// holds many cards. The outer element wins in the first case; in the
// second the grid is skipped and each card is reported.
func HeroProducts(doc *goquery.Document, base storeurl.StoreURL) []model.Product {
	out := make([]model.Product, 0)
	emitted := make(map[*html.Node]bool)
	heroCardRule.FindAll(doc.Selection).Each(func(_ int, card *goquery.Selection) {
		if hasAncestorIn(card.Get(0), nil, emitted) {
			return
		}
		p, ok := heroProduct(card, base)
		if !ok {
			return
		}
		if heroGridSize(card, base) >= 2 {
			return
		}
		emitted[card.Get(0)] = true
		out = append(out, p)
	})
	return out
}

// heroGridSize counts the product-forming cards directly inside card,
// ignoring ones nested in another such card.
func heroGridSize(card *goquery.Selection, base storeurl.StoreURL) int {
	inner := make(map[*html.Node]bool)
	heroCardRule.FindAll(card).Each(func(_ int, s *goquery.Selection) {
		if _, ok := heroProduct(s, base); ok {
			inner[s.Get(0)] = true
		}
	})
	n := 0
	for node := range inner {
		if !hasAncestorIn(node, card.Get(0), inner) {
			n++
		}
	}
	return n
}

// hasAncestorIn reports whether a proper ancestor of n below stop is in set.
func hasAncestorIn(n, stop *html.Node, set map[*html.Node]bool) bool {
	for p := n.Parent; p != nil && p != stop; p = p.Parent {
		if set[p] {
			return true
		}
	}
	return false
}

func heroProduct(card *goquery.Selection, base storeurl.StoreURL) (model.Product, bool) {
	title := heroTitleRule.First(card)
	price := heroPriceRule.First(card)
	if title.Length() == 0 || price.Length() == 0 {
		return model.Product{}, false
	}

	p := model.Product{
		Title:     InlineText(title),
		Price:     InlineText(price),
		Available: true,
	}
	if p.Title == "" || p.Price == "" {
		return model.Product{}, false
	}
	if href, ok := card.Find("a[href]").First().Attr("href"); ok {
		p.URL, _ = base.Resolve(href)
	}
	if src, ok := card.Find("img[src]").First().Attr("src"); ok {
		p.ImageURL, _ = base.Resolve(src)
	}
	return p, true
}
