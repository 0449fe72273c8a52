package bookcat

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	priceToken     = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]+)?`)
)

// Slugify derives a URL-safe identifier from display text. The text is
// lowercased, runs of non-alphanumeric characters collapse into a single
// hyphen, and leading/trailing hyphens are trimmed.
func Slugify(text string) string {
	s := slugSeparators.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// ParsePrice extracts a numeric price from free text by locating the first
// numeric token, allowing thousands separators and a decimal point.
// Returns nil when the text contains no numeric token (e.g. "Free" or an
// empty string); absence is not an error.
func ParsePrice(text string) *float64 {
	m := priceToken.FindString(text)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// SourceID derives a stable, deterministic identifier from a product's
// source URL.
func SourceID(sourceURL string) string {
	id := base64.StdEncoding.EncodeToString([]byte(sourceURL))
	if len(id) > 20 {
		id = id[:20]
	}
	return id
}

// publicationLayouts lists the date formats observed on product pages.
var publicationLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2006",
	"2006",
}

// ParsePublicationDate parses a publication date from free text.
// Returns nil when no known layout matches.
func ParsePublicationDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, layout := range publicationLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}
	return nil
}
