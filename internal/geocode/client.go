package geocode

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/geocode/cache"
)

const (
	defaultBaseURL     = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent   = "CourierRouteService/1.0 (ops@courier-route.example)"
	defaultMinInterval = time.Second
	defaultTimeout     = 10 * time.Second
)

// Config tunes a Client. Zero values select the defaults above, so
// Config{} is a valid production configuration.
type Config struct {
	// BaseURL of the geocoding search endpoint.
	BaseURL string
	// UserAgent identifies this client to the service, which rejects
	// unidentified callers.
	UserAgent string
	// MinInterval is the enforced spacing between outbound requests.
	// Negative disables rate limiting (tests only).
	MinInterval time.Duration
	// Timeout bounds each outbound request.
	Timeout time.Duration
}

// Client resolves validated addresses to coordinates through an external
// geocoding service.
//
// It coordinates:
//   - Result caching keyed on the normalized address string
//   - Client-side rate limiting (one outbound request per interval)
//   - Coalescing of concurrent lookups for the same address
//
// The client owns its cache store and limiter; construct one per deployment
// and share it. It is safe for concurrent use. Geocode never returns a Go
// error: every failure mode is represented in the result value.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	store      cache.Store
	group      singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

func NewClient(store cache.Store, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	switch {
	case cfg.MinInterval == 0:
		limit = rate.Every(defaultMinInterval)
	case cfg.MinInterval > 0:
		limit = rate.Every(cfg.MinInterval)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
		store:      store,
	}
}

// CacheKey returns the cache key for an address: its display form with
// trimmed fields, lower-cased and whitespace-collapsed, so addresses
// differing only in case or spacing share one entry.
func CacheKey(addr domain.Address) string {
	trimmed := domain.Address{
		Street:  strings.TrimSpace(addr.Street),
		City:    strings.TrimSpace(addr.City),
		State:   strings.TrimSpace(addr.State),
		ZipCode: strings.TrimSpace(addr.ZipCode),
	}
	return strings.ToLower(strings.Join(strings.Fields(trimmed.Format()), " "))
}

// Geocode resolves one address. Cached results are returned immediately
// with no rate-limit wait; a cache miss waits for the limiter, performs a
// single lookup, and caches definitive outcomes (successes, not-found, and
// service-reported errors). Transient faults such as timeouts are returned
// but never cached, so the next call retries.
func (c *Client) Geocode(ctx context.Context, addr domain.Address) domain.GeocodingResult {
	key := CacheKey(addr)

	if res, ok := c.cacheGet(ctx, key); ok {
		c.hits.Inc()
		return res
	}
	c.misses.Inc()

	// Concurrent callers for the same key share one lookup instead of each
	// burning a rate-limit slot. The shared lookup runs detached from the
	// initiating caller's context, so cancelling one caller does not fail
	// the others joined on the same key. The http.Client timeout still
	// bounds the outbound request.
	v, _, _ := c.group.Do(key, func() (any, error) {
		lctx := context.WithoutCancel(ctx)

		if res, ok := c.cacheGet(lctx, key); ok {
			return res, nil
		}

		if err := c.limiter.Wait(lctx); err != nil {
			return domain.GeocodeFailure(err.Error()), nil
		}

		res, definitive := c.lookup(lctx, addr)
		if definitive {
			c.cachePut(lctx, key, res)
		}
		return res, nil
	})

	return v.(domain.GeocodingResult)
}

// GeocodeAll resolves addresses strictly sequentially, in input order.
// Each element's cache check and rate-limit wait happens only after the
// previous element fully completes. The output has the same length and
// order as the input.
func (c *Client) GeocodeAll(ctx context.Context, addrs []domain.Address) []domain.GeocodingResult {
	out := make([]domain.GeocodingResult, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, c.Geocode(ctx, addr))
	}
	return out
}

// ClearCache empties the cache store. The rate limiter is untouched.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// CacheSize reports the current cache entry count. Diagnostic only.
func (c *Client) CacheSize(ctx context.Context) (int, error) {
	return c.store.Len(ctx)
}

// CacheHits and CacheMisses report lookup counters since construction.
func (c *Client) CacheHits() int64   { return c.hits.Load() }
func (c *Client) CacheMisses() int64 { return c.misses.Load() }

// A broken cache store must not break geocoding: read errors degrade to
// misses, write errors are logged and dropped.
func (c *Client) cacheGet(ctx context.Context, key string) (domain.GeocodingResult, bool) {
	res, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Printf("geocode cache read failed: key=%q err=%v", key, err)
		return domain.GeocodingResult{}, false
	}
	return res, ok
}

func (c *Client) cachePut(ctx context.Context, key string, res domain.GeocodingResult) {
	if err := c.store.Put(ctx, key, res); err != nil {
		log.Printf("geocode cache write failed: key=%q err=%v", key, err)
	}
}
