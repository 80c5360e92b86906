package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/geocode"
	"courier-route-service/internal/geocode/cache"
)

var testAddr = domain.Address{
	Street:  "1901 W Madison St",
	City:    "Phoenix",
	State:   "AZ",
	ZipCode: "85009",
}

// newTestServer returns a geocoder stub and a pointer to its request count.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func respondPlace(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte(`[{"lat":"33.4484","lon":"-112.0740","display_name":"1901, West Madison Street, Phoenix"}]`))
}

func newTestClient(srv *httptest.Server, store cache.Store) *geocode.Client {
	return geocode.NewClient(store, geocode.Config{
		BaseURL:     srv.URL,
		MinInterval: -1, // no rate limiting unless a test opts in
	})
}

func TestGeocodeSuccess(t *testing.T) {
	srv, _ := newTestServer(t, respondPlace)
	client := newTestClient(srv, cache.NewMemoryStore())

	res := client.Geocode(context.Background(), testAddr)

	if !res.Success {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if res.Coordinates.Lat != 33.4484 || res.Coordinates.Lon != -112.0740 {
		t.Fatalf("unexpected coordinates: %+v", res.Coordinates)
	}
	if res.DisplayName != "1901, West Madison Street, Phoenix" {
		t.Fatalf("unexpected display name: %q", res.DisplayName)
	}
}

func TestGeocodeSendsStructuredQuery(t *testing.T) {
	var gotQuery map[string]string
	var gotUA string

	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		gotUA = r.Header.Get("User-Agent")
		respondPlace(w, r)
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	client.Geocode(context.Background(), testAddr)

	want := map[string]string{
		"street":         "1901 W Madison St",
		"city":           "Phoenix",
		"state":          "AZ",
		"postalcode":     "85009",
		"country":        "United States",
		"format":         "json",
		"limit":          "1",
		"addressdetails": "1",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query param %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if gotUA == "" {
		t.Error("expected a client-identifying User-Agent header")
	}
}

func TestGeocodeSecondCallHitsCache(t *testing.T) {
	srv, calls := newTestServer(t, respondPlace)
	client := newTestClient(srv, cache.NewMemoryStore())

	first := client.Geocode(context.Background(), testAddr)
	second := client.Geocode(context.Background(), testAddr)

	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected 1 upstream request, got %d", got)
	}
	if first != second {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
	if client.CacheHits() != 1 || client.CacheMisses() != 1 {
		t.Fatalf("counters hits=%d misses=%d, want 1/1", client.CacheHits(), client.CacheMisses())
	}
}

func TestGeocodeCacheKeyIgnoresCaseAndSpacing(t *testing.T) {
	srv, calls := newTestServer(t, respondPlace)
	client := newTestClient(srv, cache.NewMemoryStore())

	shouted := domain.Address{
		Street:  "1901  W MADISON ST",
		City:    " PHOENIX ",
		State:   "az",
		ZipCode: "85009",
	}

	if geocode.CacheKey(testAddr) != geocode.CacheKey(shouted) {
		t.Fatalf("cache keys differ: %q vs %q", geocode.CacheKey(testAddr), geocode.CacheKey(shouted))
	}

	client.Geocode(context.Background(), testAddr)
	client.Geocode(context.Background(), shouted)

	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected 1 upstream request for equivalent addresses, got %d", got)
	}
}

func TestGeocodeNotFoundIsCached(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	res := client.Geocode(context.Background(), testAddr)
	if res.Success {
		t.Fatal("expected failure for empty result set")
	}
	if res.Error != "Address not found. Please verify the address is correct." {
		t.Fatalf("unexpected message: %q", res.Error)
	}

	client.Geocode(context.Background(), testAddr)
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("not-found result was not cached; %d upstream requests", got)
	}
}

func TestGeocodeServiceErrorIsCached(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	first := client.Geocode(context.Background(), testAddr)
	if first.Success {
		t.Fatal("expected failure for 503 response")
	}

	second := client.Geocode(context.Background(), testAddr)
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("service error was not cached; %d upstream requests", got)
	}
	if second != first {
		t.Fatalf("cached failure differs: %+v vs %+v", second, first)
	}
}

func TestGeocodeTransportFaultIsNotCached(t *testing.T) {
	srv, _ := newTestServer(t, respondPlace)
	srv.Close() // connection refused from here on

	store := cache.NewMemoryStore()
	client := newTestClient(srv, store)

	res := client.Geocode(context.Background(), testAddr)
	if res.Success {
		t.Fatal("expected failure when the service is unreachable")
	}
	if res.Error == "" {
		t.Fatal("expected the fault message to be carried in the result")
	}

	size, err := store.Len(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 0 {
		t.Fatalf("transport fault was cached; cache size = %d", size)
	}
}

func TestGeocodeAllPreservesOrder(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("street") == "404 Nowhere Rd" {
			w.Write([]byte(`[]`))
			return
		}
		respondPlace(w, r)
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	missing := domain.Address{Street: "404 Nowhere Rd", City: "Phoenix", State: "AZ", ZipCode: "85009"}
	results := client.GeocodeAll(context.Background(), []domain.Address{testAddr, missing, testAddr})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Success || results[1].Success || !results[2].Success {
		t.Fatalf("unexpected outcome shape: %+v", results)
	}
}

func TestGeocodeAllEnforcesMinimumSpacing(t *testing.T) {
	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		respondPlace(w, r)
	})

	const interval = 50 * time.Millisecond
	client := geocode.NewClient(cache.NewMemoryStore(), geocode.Config{
		BaseURL:     srv.URL,
		MinInterval: interval,
	})

	addrs := []domain.Address{
		{Street: "1 First St", City: "Phoenix", State: "AZ", ZipCode: "85001"},
		{Street: "2 Second St", City: "Phoenix", State: "AZ", ZipCode: "85002"},
		{Street: "3 Third St", City: "Phoenix", State: "AZ", ZipCode: "85003"},
	}

	start := time.Now()
	client.GeocodeAll(context.Background(), addrs)
	elapsed := time.Since(start)

	if min := 2 * interval; elapsed < min {
		t.Fatalf("3 uncached lookups finished in %v, want at least %v", elapsed, min)
	}
}

func TestGeocodeCachedResultSkipsRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, respondPlace)
	client := geocode.NewClient(cache.NewMemoryStore(), geocode.Config{
		BaseURL:     srv.URL,
		MinInterval: time.Hour, // would hang if a cached hit waited
	})

	client.Geocode(context.Background(), testAddr)

	done := make(chan domain.GeocodingResult, 1)
	go func() {
		done <- client.Geocode(context.Background(), testAddr)
	}()

	select {
	case res := <-done:
		if !res.Success {
			t.Fatalf("expected cached success, got %q", res.Error)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cached lookup blocked on the rate limiter")
	}
}

func TestConcurrentCallersShareOneLookup(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		respondPlace(w, r)
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	var wg sync.WaitGroup
	results := make([]domain.GeocodingResult, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = client.Geocode(context.Background(), testAddr)
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected concurrent callers to share 1 upstream request, got %d", got)
	}
	for i, res := range results {
		if !res.Success {
			t.Fatalf("caller %d got failure %q", i, res.Error)
		}
	}
}

func TestSharedLookupSurvivesCallerCancellation(t *testing.T) {
	srv, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		respondPlace(w, r)
	})
	client := newTestClient(srv, cache.NewMemoryStore())

	initiator, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	go func() {
		close(started)
		client.Geocode(initiator, testAddr)
	}()
	<-started
	time.Sleep(20 * time.Millisecond) // let the first lookup reach upstream

	done := make(chan domain.GeocodingResult, 1)
	go func() {
		done <- client.Geocode(context.Background(), testAddr)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	res := <-done
	if !res.Success {
		t.Fatalf("joined caller got %q after the initiating caller was cancelled", res.Error)
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected a single shared upstream request, got %d", got)
	}
}

func TestClearCacheForcesRefetch(t *testing.T) {
	srv, calls := newTestServer(t, respondPlace)
	client := newTestClient(srv, cache.NewMemoryStore())
	ctx := context.Background()

	client.Geocode(ctx, testAddr)

	if size, _ := client.CacheSize(ctx); size != 1 {
		t.Fatalf("cache size = %d, want 1", size)
	}

	if err := client.ClearCache(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size, _ := client.CacheSize(ctx); size != 0 {
		t.Fatalf("cache size after clear = %d, want 0", size)
	}

	client.Geocode(ctx, testAddr)
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected refetch after clear, got %d upstream requests", got)
	}
}

// brokenStore fails every operation, standing in for an unreachable cache
// service.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (domain.GeocodingResult, bool, error) {
	return domain.GeocodingResult{}, false, errors.New("cache service down")
}
func (brokenStore) Put(context.Context, string, domain.GeocodingResult) error {
	return errors.New("cache service down")
}
func (brokenStore) Clear(context.Context) error      { return errors.New("cache service down") }
func (brokenStore) Len(context.Context) (int, error) { return 0, errors.New("cache service down") }

func TestBrokenStoreDegradesToUncachedLookups(t *testing.T) {
	srv, calls := newTestServer(t, respondPlace)
	client := newTestClient(srv, brokenStore{})

	res := client.Geocode(context.Background(), testAddr)
	if !res.Success {
		t.Fatalf("expected success despite broken cache, got %q", res.Error)
	}

	client.Geocode(context.Background(), testAddr)
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected every call to reach upstream with a broken cache, got %d", got)
	}
}
