package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"brandscope/internal/model"
)

type platformRule struct {
	platform model.SocialPlatform
	pattern  *regexp.Regexp
}

// socialRules is ordered; the first matching platform wins.
var socialRules = []platformRule{
	{model.PlatformFacebook, regexp.MustCompile(`(?i)(^|[/.])(facebook\.com|fb\.com)`)},
	{model.PlatformInstagram, regexp.MustCompile(`(?i)(^|[/.])instagram\.com`)},
	{model.PlatformTwitter, regexp.MustCompile(`(?i)(^|[/.])(twitter\.com|x\.com)`)},
	{model.PlatformTikTok, regexp.MustCompile(`(?i)(^|[/.])tiktok\.com`)},
	{model.PlatformPinterest, regexp.MustCompile(`(?i)(^|[/.])pinterest\.[a-z.]+`)},
	{model.PlatformYouTube, regexp.MustCompile(`(?i)(^|[/.])(youtube\.com|youtu\.be)`)},
}

var handlePrefix = regexp.MustCompile(`(?i)^(https?:)?//(www\.)?`)

// SocialHandles collects every homepage anchor pointing at a known
// social platform.
func SocialHandles(doc *goquery.Document) []model.SocialHandle {
	out := make([]model.SocialHandle, 0)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		platform, ok := SocialPlatform(href)
		if !ok {
			return
		}
		out = append(out, model.SocialHandle{
			Platform: platform,
			URL:      href,
			Handle:   SocialHandle(href),
		})
	})
	return out
}

// SocialPlatform identifies the platform a link points at.
func SocialPlatform(href string) (model.SocialPlatform, bool) {
	host := SocialHandle(href)
	if host == "" {
		return "", false
	}
	for _, r := range socialRules {
		if r.pattern.MatchString(host) {
			return r.platform, true
		}
	}
	return "", false
}

// SocialHandle strips the scheme, a leading "www." and everything from
// the first path separator on, leaving the bare host.
func SocialHandle(href string) string {
	h := handlePrefix.ReplaceAllString(strings.TrimSpace(href), "")
	if i := strings.IndexAny(h, "/?#"); i >= 0 {
		h = h[:i]
	}
	return strings.ToLower(h)
}
