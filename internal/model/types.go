package model

import "time"

// Product is a single catalog entry, either parsed from the store's
// product feed or detected as a hero card on the homepage.
type Product struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Policy holds a store policy page. A policy that could not be located
// is represented by NotFoundPolicy rather than being omitted.
type Policy struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// PolicyNotFoundContent is the content of a sentinel policy.
const PolicyNotFoundContent = "Not found"

// NotFoundPolicy returns the sentinel policy for the given title.
func NotFoundPolicy(title string) Policy {
	return Policy{Title: title, Content: PolicyNotFoundContent}
}

// IsNotFound reports whether p is a sentinel produced by NotFoundPolicy.
func (p Policy) IsNotFound() bool {
	return p.Content == PolicyNotFoundContent && p.URL == ""
}

// FaqItem is a single question/answer pair.
type FaqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SocialPlatform identifies a supported social network.
type SocialPlatform string

const (
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformPinterest SocialPlatform = "pinterest"
	PlatformYouTube   SocialPlatform = "youtube"
)

// SocialHandle is a social profile link discovered on the homepage.
type SocialHandle struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
	Handle   string         `json:"handle"`
}

// ContactInfo groups deduplicated contact details.
type ContactInfo struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
	Addresses    []string `json:"addresses"`
}

// EmptyContactInfo returns a ContactInfo whose lists are non-nil so that
// it serializes as empty arrays.
func EmptyContactInfo() ContactInfo {
	return ContactInfo{
		Emails:       []string{},
		PhoneNumbers: []string{},
		Addresses:    []string{},
	}
}

// BrandInsights is the aggregate produced by one extraction run. It is
// the unit of caching and the API response payload.
type BrandInsights struct {
	StoreURL           string            `json:"store_url"`
	BrandName          string            `json:"brand_name"`
	ProductCatalog     []Product         `json:"product_catalog"`
	HeroProducts       []Product         `json:"hero_products"`
	PrivacyPolicy      Policy            `json:"privacy_policy"`
	ReturnRefundPolicy Policy            `json:"return_refund_policy"`
	FAQs               []FaqItem         `json:"faqs"`
	SocialHandles      []SocialHandle    `json:"social_handles"`
	ContactInfo        ContactInfo       `json:"contact_info"`
	AboutBrand         string            `json:"about_brand"`
	ImportantLinks     map[string]string `json:"important_links"`
	FetchedAt          time.Time         `json:"fetched_at"`
}
