package extract

import (
	"strings"

	htmlmd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"brandscope/internal/scrapeutil"
)

// ContentFormat selects how long-form bodies (policies, about text,
// FAQ answers) are rendered.
type ContentFormat string

const (
	FormatText     ContentFormat = "text"
	FormatMarkdown ContentFormat = "markdown"
)

// Renderer turns a selection into long-form content. A Renderer is a
// plain value and may be shared between goroutines; each markdown
// render gets its own converter.
type Renderer struct {
	format ContentFormat
	domain string
}

// PlainText renders content as newline-separated text.
var PlainText = Renderer{format: FormatText}

// NewRenderer returns a Renderer for format. Unknown formats fall back
// to plain text. domain is used by the markdown converter to resolve
// relative links.
func NewRenderer(format ContentFormat, domain string) Renderer {
	if format != FormatMarkdown {
		return PlainText
	}
	return Renderer{format: FormatMarkdown, domain: domain}
}

// Render returns the content of sel in the renderer's format.
func (r Renderer) Render(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	if r.format == FormatMarkdown {
		return strings.TrimSpace(htmlmd.NewConverter(r.domain, true, nil).Convert(sel))
	}
	return BlockText(sel)
}

// BlockText joins every non-blank text node under sel with newlines,
// trimming each one. Script and style contents are skipped.
func BlockText(sel *goquery.Selection) string {
	parts := make([]string, 0)
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, "\n")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
		return
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// InlineText returns the text of sel on a single line with whitespace
// collapsed.
func InlineText(sel *goquery.Selection) string {
	return scrapeutil.NormalizeSpace(sel.Text())
}
