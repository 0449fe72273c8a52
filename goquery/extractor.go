// Package goquery provides a CSS-selector-based implementation of
// bookcat.Extractor for storefront pages.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookcat"
)

// Selector sets per extraction kind. Storefronts vary in markup, so each
// kind probes several common selectors; candidates are deduplicated
// across selectors with the first occurrence winning.
var (
	navigationSelectors = []string{
		"nav a",
		".main-nav a",
		".navigation a",
		".header-nav a",
		".menu a",
	}

	categorySelectors = []string{
		".category-item",
		".category-link",
		".subcategory-item",
		`a[href*="/category/"]`,
		`a[href*="/books/"]`,
	}

	productSelectors = []string{
		".product-item",
		".book-item",
		".product-card",
		".book-card",
		".product",
	}
)

// Product sub-element selectors.
const (
	productTitleSelector  = "h3, h4, .title, .name, .book-title, .product-title"
	productPriceSelector  = ".price, .cost, .book-price"
	productAuthorSelector = ".author, .book-author"
)

// Detail page selectors.
const (
	detailDescriptionSelector = ".description, .book-description, .product-description"
	detailISBNSelector        = ".isbn, [data-isbn]"
	detailPublisherSelector   = ".publisher, .book-publisher"
	detailPubDateSelector     = ".publication-date, .publish-date"
	detailRatingsSelector     = ".ratings-avg, .rating-avg, [data-rating]"
	detailReviewCountSelector = ".reviews-count, .review-count"
	reviewBlockSelector       = ".review, .review-item"
	reviewAuthorSelector      = ".review-author, .author"
	reviewRatingSelector      = ".rating"
	reviewTextSelector        = ".review-text, p"
)

// Navigation entries that are present on every storefront page but are not
// catalog headings.
var navigationSkipWords = []string{"Home", "Login", "Sign in", "Basket", "Cart"}

// Ensure Extractor implements bookcat.Extractor at compile time.
var _ bookcat.Extractor = (*Extractor)(nil)

// Extractor extracts candidate records from rendered HTML using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractNavigation extracts navigation heading candidates, deduplicated by
// slug with the first occurrence winning.
func (e *Extractor) ExtractNavigation(html, baseURL string) ([]bookcat.NavigationCandidate, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []bookcat.NavigationCandidate

	for _, selector := range navigationSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			title := strings.TrimSpace(sel.Text())
			href, ok := sel.Attr("href")
			if title == "" || !ok || href == "" {
				return
			}
			if len(title) < 3 || len(title) > 50 || skipNavigationTitle(title) {
				return
			}

			slug := bookcat.Slugify(title)
			if slug == "" {
				return
			}
			if _, ok := seen[slug]; ok {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			seen[slug] = struct{}{}
			candidates = append(candidates, bookcat.NavigationCandidate{
				Title:     title,
				Slug:      slug,
				SourceURL: resolved,
			})
		})
	}

	return candidates, nil
}

// ExtractCategories extracts category candidates, deduplicated by slug with
// the first occurrence winning.
func (e *Extractor) ExtractCategories(html, baseURL string) ([]bookcat.CategoryCandidate, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []bookcat.CategoryCandidate

	for _, selector := range categorySelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			title := strings.TrimSpace(sel.Text())
			if title == "" || len(title) < 3 {
				return
			}

			// The selector may match the anchor itself or a wrapper
			// around one.
			href, ok := sel.Attr("href")
			if !ok {
				href, ok = sel.Find("a").Attr("href")
			}
			if !ok || href == "" {
				return
			}

			slug := bookcat.Slugify(title)
			if slug == "" {
				return
			}
			if _, ok := seen[slug]; ok {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			seen[slug] = struct{}{}
			candidates = append(candidates, bookcat.CategoryCandidate{
				Title:     title,
				Slug:      slug,
				SourceURL: resolved,
			})
		})
	}

	return candidates, nil
}

// ExtractProducts extracts product candidates from a listing page,
// deduplicated by source URL with the first occurrence winning. A block
// without a title or link is dropped; missing author, price, or image
// yield absent values.
func (e *Extractor) ExtractProducts(html, baseURL string) ([]bookcat.ProductCandidate, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var candidates []bookcat.ProductCandidate

	for _, selector := range productSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			title := strings.TrimSpace(sel.Find(productTitleSelector).First().Text())
			href, ok := sel.Find("a").Attr("href")
			if title == "" || !ok || href == "" {
				return
			}

			sourceURL := resolveURL(base, href)
			if sourceURL == "" {
				return
			}
			if _, ok := seen[sourceURL]; ok {
				return
			}

			candidate := bookcat.ProductCandidate{
				Title:     title,
				Price:     bookcat.ParsePrice(sel.Find(productPriceSelector).First().Text()),
				SourceURL: sourceURL,
				SourceID:  bookcat.SourceID(sourceURL),
			}

			if author := strings.TrimSpace(sel.Find(productAuthorSelector).First().Text()); author != "" {
				candidate.Author = &author
			}
			if src, ok := sel.Find("img").Attr("src"); ok && src != "" {
				if resolved := resolveURL(base, src); resolved != "" {
					candidate.ImageURL = &resolved
				}
			}

			seen[sourceURL] = struct{}{}
			candidates = append(candidates, candidate)
		})
	}

	return candidates, nil
}

// ExtractProductDetail extracts detail fields from a single product page.
// Every field is optional; a page matching no selectors yields an empty
// candidate, not an error.
func (e *Extractor) ExtractProductDetail(html, baseURL string) (*bookcat.DetailCandidate, error) {
	doc, _, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	candidate := &bookcat.DetailCandidate{}

	if description := strings.TrimSpace(doc.Find(detailDescriptionSelector).First().Text()); description != "" {
		candidate.Description = &description
	}
	if isbn := strings.TrimSpace(doc.Find(detailISBNSelector).First().Text()); isbn != "" {
		candidate.ISBN = &isbn
	}
	if publisher := strings.TrimSpace(doc.Find(detailPublisherSelector).First().Text()); publisher != "" {
		candidate.Publisher = &publisher
	}
	candidate.PublicationDate = bookcat.ParsePublicationDate(doc.Find(detailPubDateSelector).First().Text())
	candidate.RatingsAvg = bookcat.ParsePrice(doc.Find(detailRatingsSelector).First().Text())
	if count := bookcat.ParsePrice(doc.Find(detailReviewCountSelector).First().Text()); count != nil {
		n := int(*count)
		candidate.ReviewsCount = &n
	}

	doc.Find(reviewBlockSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Find(reviewTextSelector).First().Text())
		if text == "" {
			return
		}
		review := bookcat.ReviewCandidate{
			Text:   text,
			Rating: bookcat.ParsePrice(sel.Find(reviewRatingSelector).First().Text()),
		}
		if author := strings.TrimSpace(sel.Find(reviewAuthorSelector).First().Text()); author != "" {
			review.Author = &author
		}
		candidate.Reviews = append(candidate.Reviews, review)
	})

	return candidate, nil
}

// parse parses the HTML document and the base URL.
func parse(html, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, bookcat.Errorf(bookcat.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, bookcat.Errorf(bookcat.EINVALID, "failed to parse HTML: %v", err)
	}

	return doc, base, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or is a non-HTTP link.
func resolveURL(base *url.URL, href string) string {
	if isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

// skipNavigationTitle reports whether a navigation entry is site chrome
// rather than a catalog heading.
func skipNavigationTitle(title string) bool {
	for _, word := range navigationSkipWords {
		if strings.Contains(strings.ToLower(title), strings.ToLower(word)) {
			return true
		}
	}
	return false
}
