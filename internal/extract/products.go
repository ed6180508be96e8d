package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"brandscope/internal/model"
	"brandscope/internal/storeurl"
)

// ProductFeedPath is the storefront's public JSON product feed.
const ProductFeedPath = "/products.json"

// PriceUnavailable is the price reported for a product without variants.
const PriceUnavailable = "N/A"

// flexString decodes a JSON string, number or null into a string. Feed
// ids are large integers and prices appear both quoted and unquoted.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flexString: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

type feedVariant struct {
	Price          *flexString `json:"price"`
	CompareAtPrice flexString  `json:"compare_at_price"`
	Available      *bool       `json:"available"`
}

type feedImage struct {
	Src string `json:"src"`
}

type feedProduct struct {
	ID        flexString    `json:"id"`
	Title     string        `json:"title"`
	Handle    string        `json:"handle"`
	BodyHTML  string        `json:"body_html"`
	Available *bool         `json:"available"`
	Variants  []feedVariant `json:"variants"`
	Images    []feedImage   `json:"images"`
}

type productFeed struct {
	Products []feedProduct `json:"products"`
}

// Products parses a products.json body into catalog entries. Malformed
// JSON yields an empty catalog.
func Products(body []byte, base storeurl.StoreURL) []model.Product {
	var feed productFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		return []model.Product{}
	}

	out := make([]model.Product, 0, len(feed.Products))
	for _, p := range feed.Products {
		productURL, _ := base.Resolve("/products/" + url.PathEscape(p.Handle))
		out = append(out, model.Product{
			ID:          string(p.ID),
			Title:       p.Title,
			Description: p.BodyHTML,
			Price:       formatPrice(p.Variants),
			Available:   productAvailable(p),
			URL:         productURL,
			ImageURL:    firstImage(p.Images),
		})
	}
	return out
}

// formatPrice renders the first variant's price, appending the
// compare-at price when it differs: "19.99 (Was 29.99)".
func formatPrice(variants []feedVariant) string {
	if len(variants) == 0 {
		return PriceUnavailable
	}
	v := variants[0]
	price := PriceUnavailable
	if v.Price != nil {
		price = string(*v.Price)
	}
	compare := strings.TrimSpace(string(v.CompareAtPrice))
	if compare != "" && compare != price {
		return fmt.Sprintf("%s (Was %s)", price, compare)
	}
	return price
}

// productAvailable prefers the product-level flag and falls back to any
// available variant, which is where current feeds carry it.
func productAvailable(p feedProduct) bool {
	if p.Available != nil {
		return *p.Available
	}
	for _, v := range p.Variants {
		if v.Available != nil && *v.Available {
			return true
		}
	}
	return false
}

func firstImage(images []feedImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].Src
}
