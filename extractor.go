package bookcat

import "time"

// NavigationCandidate is an extracted navigation heading awaiting upsert.
type NavigationCandidate struct {
	Title     string
	Slug      string
	SourceURL string
}

// CategoryCandidate is an extracted category awaiting upsert.
type CategoryCandidate struct {
	Title     string
	Slug      string
	SourceURL string
}

// ProductCandidate is an extracted product listing entry awaiting upsert.
// Optional fields are nil when the page omits them.
type ProductCandidate struct {
	Title     string
	Author    *string
	Price     *float64
	ImageURL  *string
	SourceURL string
	SourceID  string
}

// DetailCandidate holds fields extracted from a single product page.
type DetailCandidate struct {
	Description     *string
	ISBN            *string
	Publisher       *string
	PublicationDate *time.Time
	RatingsAvg      *float64
	ReviewsCount    *int
	Reviews         []ReviewCandidate
}

// ReviewCandidate is a review extracted from a product page.
type ReviewCandidate struct {
	Author *string
	Rating *float64
	Text   string
}

// Extractor produces candidate records from rendered page HTML by applying
// selector rules. Implementations resolve relative hrefs and image sources
// against baseURL, and deduplicate within a single call by slug (products:
// by source URL), keeping the first occurrence. A missing optional field
// yields an absent value, never an error; a candidate missing its required
// fields (title, and the link for product kinds) is dropped.
type Extractor interface {
	ExtractNavigation(html, baseURL string) ([]NavigationCandidate, error)
	ExtractCategories(html, baseURL string) ([]CategoryCandidate, error)
	ExtractProducts(html, baseURL string) ([]ProductCandidate, error)
	ExtractProductDetail(html, baseURL string) (*DetailCandidate, error)
}
