package ports

import "context"

// Diagnostic boundary over the geocode client's cache, for ops endpoints.
type GeocodeCache interface {
	// Remove every cached entry. The client's rate limiter is unaffected.
	ClearCache(ctx context.Context) error
	// Report the current entry count.
	CacheSize(ctx context.Context) (int, error)
	// Lookup counters since process start.
	CacheHits() int64
	CacheMisses() int64
}
