package scrape

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bookcat"
)

// CacheKey derives the cache key for a fetched page. Keys are scoped by
// target type so the same URL fetched by different passes tracks
// freshness independently.
func CacheKey(targetType bookcat.TargetType, url string) string {
	sum := xxhash.Sum64String(string(targetType) + "\x00" + url)
	return strconv.FormatUint(sum, 16)
}
