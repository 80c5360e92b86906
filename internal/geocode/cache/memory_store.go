package cache

import (
	"context"
	"sync"

	"courier-route-service/internal/domain"
)

// In-process geocode cache. The fallback store when no cache service is
// configured. Entries live for the process lifetime; no eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.GeocodingResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]domain.GeocodingResult)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (domain.GeocodingResult, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, res domain.GeocodingResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = res
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]domain.GeocodingResult)
	return nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries), nil
}
