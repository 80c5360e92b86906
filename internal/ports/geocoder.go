package ports

import (
	"context"

	"courier-route-service/internal/domain"
)

// Contract for resolving addresses to coordinates. Handlers and services
// depend on this boundary, not on the concrete geocoding adapter.
type Geocoder interface {
	// Resolve one address. Failure is carried in the result value.
	Geocode(ctx context.Context, addr domain.Address) domain.GeocodingResult
	// Resolve addresses sequentially, preserving input order and length.
	GeocodeAll(ctx context.Context, addrs []domain.Address) []domain.GeocodingResult
}
