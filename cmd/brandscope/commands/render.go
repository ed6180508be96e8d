package commands

import (
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"brandscope/internal/model"
)

const maxCell = 80

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxCell},
	})
	return t
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxCell {
		return s
	}
	return text.Trim(s, maxCell-3) + "..."
}

// renderTables prints a summary table followed by one table per
// non-empty list facet.
func renderTables(w io.Writer, in *model.BrandInsights) {
	summary := newTable(w, "Brand insights")
	summary.AppendHeader(table.Row{"Field", "Value"})
	summary.AppendRows([]table.Row{
		{"Store", in.StoreURL},
		{"Brand", in.BrandName},
		{"Fetched at", in.FetchedAt.Format(time.RFC3339)},
		{"Catalog products", len(in.ProductCatalog)},
		{"Hero products", len(in.HeroProducts)},
		{"Privacy policy", policySummary(in.PrivacyPolicy)},
		{"Return/refund policy", policySummary(in.ReturnRefundPolicy)},
		{"FAQs", len(in.FAQs)},
		{"Emails", strings.Join(in.ContactInfo.Emails, ", ")},
		{"Phone numbers", strings.Join(in.ContactInfo.PhoneNumbers, ", ")},
		{"Addresses", truncate(strings.Join(in.ContactInfo.Addresses, " | "))},
		{"About", truncate(in.AboutBrand)},
	})
	summary.Render()

	if len(in.HeroProducts) > 0 {
		renderProducts(w, "Hero products", in.HeroProducts)
	}
	if len(in.ProductCatalog) > 0 {
		renderProducts(w, "Product catalog", in.ProductCatalog)
	}

	if len(in.SocialHandles) > 0 {
		t := newTable(w, "Social handles")
		t.AppendHeader(table.Row{"Platform", "URL"})
		for _, h := range in.SocialHandles {
			t.AppendRow(table.Row{string(h.Platform), h.URL})
		}
		t.Render()
	}

	if len(in.ImportantLinks) > 0 {
		labels := make([]string, 0, len(in.ImportantLinks))
		for label := range in.ImportantLinks {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		t := newTable(w, "Important links")
		t.AppendHeader(table.Row{"Label", "URL"})
		for _, label := range labels {
			t.AppendRow(table.Row{label, in.ImportantLinks[label]})
		}
		t.Render()
	}

	if len(in.FAQs) > 0 {
		t := newTable(w, "FAQs")
		t.AppendHeader(table.Row{"Question", "Answer"})
		for _, f := range in.FAQs {
			t.AppendRow(table.Row{truncate(f.Question), truncate(f.Answer)})
		}
		t.Render()
	}
}

func renderProducts(w io.Writer, title string, products []model.Product) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"#", "Title", "Price", "Available"})
	for i, p := range products {
		t.AppendRow(table.Row{i + 1, truncate(p.Title), p.Price, p.Available})
	}
	t.Render()
}

func policySummary(p model.Policy) string {
	if p.IsNotFound() {
		return "not found"
	}
	if p.URL != "" {
		return p.URL
	}
	return p.Title
}
