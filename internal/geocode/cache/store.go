package cache

import (
	"context"

	"courier-route-service/internal/domain"
)

// Store is the capability boundary for geocode result caching.
// Implementations are selected at construction time: RedisStore when a cache
// service is configured, MemoryStore as the in-process fallback.
//
// Keys are normalized address strings; values are definitive geocoding
// outcomes (successes and address-attributable failures). Entries have
// process-cache semantics: no TTL, and correctness never depends on an entry
// being present.
type Store interface {
	// Get returns the cached result for key and whether it was present.
	Get(ctx context.Context, key string) (domain.GeocodingResult, bool, error)
	// Put stores a definitive result under key, replacing any previous entry.
	Put(ctx context.Context, key string, res domain.GeocodingResult) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
	// Len reports the current entry count. Diagnostic only.
	Len(ctx context.Context) (int, error)
}
