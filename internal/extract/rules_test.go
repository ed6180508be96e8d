package extract

import (
	"strings"
	"testing"
)

func TestRule_OutermostSkipsNestedMatches(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<div class="product-card"><div class="product-card__media"></div></div>
<div class="product-card"></div>
</body></html>`)

	if n := heroCardRule.FindAll(doc.Selection).Length(); n != 3 {
		t.Fatalf("expected FindAll to report 3 matches, got %d", n)
	}
	if n := heroCardRule.Outermost(doc.Selection).Length(); n != 2 {
		t.Fatalf("expected 2 outermost matches, got %d", n)
	}
}

func TestRule_MatchesTagAndClass(t *testing.T) {
	doc := mustDoc(t, `<html><body><span class="Price">1</span><div class="price">2</div><span>3</span></body></html>`)
	if !heroPriceRule.Matches(doc.Find("span").First()) {
		t.Fatalf("expected case-insensitive class match on span")
	}
	if heroPriceRule.Matches(doc.Find("div").First()) {
		t.Fatalf("expected tag outside the rule to be rejected")
	}
	if heroPriceRule.Matches(doc.Find("span").Last()) {
		t.Fatalf("expected element without class to be rejected")
	}
}

func TestLinkRule_FirstHrefSkipsEmpty(t *testing.T) {
	doc := mustDoc(t, `<html><body><a href="">Contact</a><a href="/pages/contact">Contact</a></body></html>`)
	href, ok := contactLinkRule.FirstHref(doc.Selection)
	if !ok || href != "/pages/contact" {
		t.Fatalf("expected second anchor, got %q (ok=%v)", href, ok)
	}
}

func TestRenderer(t *testing.T) {
	doc := mustDoc(t, `<html><body><div id="c"><h2>Shipping</h2><script>var x = 1;</script><p>We ship <b>fast</b>.</p></div></body></html>`)
	sel := doc.Find("#c")

	if got := PlainText.Render(sel); got != "Shipping\nWe ship\nfast\n." {
		t.Fatalf("unexpected plain text %q", got)
	}

	md := NewRenderer(FormatMarkdown, "shop.test").Render(sel)
	if !strings.Contains(md, "## Shipping") || !strings.Contains(md, "**fast**") {
		t.Fatalf("expected markdown output, got %q", md)
	}

	if NewRenderer("html", "shop.test") != PlainText {
		t.Fatalf("expected unknown format to fall back to plain text")
	}
}
