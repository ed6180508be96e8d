package extract

import "testing"

func TestImportantLinks(t *testing.T) {
	doc := mustDoc(t, `<html><body>
<a href="/blogs/news">Blog</a>
<a href="/blogs/other">Our Blog</a>
<a href="/pages/help">Help Center</a>
<a href="https://support.example.com">Customer Support</a>
<a href="/apps/track">TRACK ORDER</a>
<a href="/pages/contact">Contact Us</a>
</body></html>`)

	got := ImportantLinks(doc, testBase)
	want := map[string]string{
		"blog":        "https://shop.test/blogs/news",
		"help":        "https://shop.test/pages/help",
		"support":     "https://support.example.com",
		"track order": "https://shop.test/apps/track",
		"contact us":  "https://shop.test/pages/contact",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(got), got)
	}
	for label, href := range want {
		if got[label] != href {
			t.Fatalf("%s: expected %q, got %q", label, href, got[label])
		}
	}
	if _, ok := got["size guide"]; ok {
		t.Fatalf("expected missing labels to be omitted")
	}
}
