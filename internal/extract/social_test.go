package extract

import (
	"testing"

	"brandscope/internal/model"
)

func TestSocialHandles(t *testing.T) {
	doc := mustDoc(t, `<html><body><footer>
<a href="https://www.facebook.com/brand">Facebook</a>
<a href="https://instagram.com/brand/">Instagram</a>
<a href="https://x.com/brand">X</a>
<a href="https://www.linux.com/">Linux</a>
<a href="/pages/twitter-giveaway">Giveaway</a>
</footer></body></html>`)

	got := SocialHandles(doc)
	want := []model.SocialHandle{
		{Platform: model.PlatformFacebook, URL: "https://www.facebook.com/brand", Handle: "facebook.com"},
		{Platform: model.PlatformInstagram, URL: "https://instagram.com/brand/", Handle: "instagram.com"},
		{Platform: model.PlatformTwitter, URL: "https://x.com/brand", Handle: "x.com"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d handles, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("handle %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSocialPlatform(t *testing.T) {
	cases := []struct {
		href string
		want model.SocialPlatform
		ok   bool
	}{
		{"https://youtu.be/abc", model.PlatformYouTube, true},
		{"https://www.youtube.com/@brand", model.PlatformYouTube, true},
		{"https://www.tiktok.com/@brand", model.PlatformTikTok, true},
		{"https://pinterest.co.uk/brand", model.PlatformPinterest, true},
		{"https://twitter.com/brand", model.PlatformTwitter, true},
		{"https://m.facebook.com/brand", model.PlatformFacebook, true},
		{"https://shop.test/redirect?to=instagram.com", "", false},
		{"mailto:hi@facebook.com", "", false},
	}
	for _, tc := range cases {
		got, ok := SocialPlatform(tc.href)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: expected (%q, %v), got (%q, %v)", tc.href, tc.want, tc.ok, got, ok)
		}
	}
}

func TestSocialHandle(t *testing.T) {
	if got := SocialHandle("https://www.Instagram.com/brand?hl=en"); got != "instagram.com" {
		t.Fatalf("expected bare host, got %q", got)
	}
	if got := SocialHandle("//facebook.com/brand"); got != "facebook.com" {
		t.Fatalf("expected bare host for protocol-relative link, got %q", got)
	}
}
