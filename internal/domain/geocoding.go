package domain

// GeocodingResult is the tagged outcome of resolving an address to
// coordinates: either a success carrying coordinates and the provider's
// display name, or a failure carrying a human-readable message. Never both.
//
// The struct round-trips through JSON so cache stores can persist it.
type GeocodingResult struct {
	Success     bool        `json:"success"`
	Coordinates Coordinates `json:"coordinates,omitempty"`
	DisplayName string      `json:"display_name,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// GeocodeSuccess builds a successful result.
func GeocodeSuccess(c Coordinates, displayName string) GeocodingResult {
	return GeocodingResult{Success: true, Coordinates: c, DisplayName: displayName}
}

// GeocodeFailure builds a failed result with a message suitable for display.
func GeocodeFailure(msg string) GeocodingResult {
	return GeocodingResult{Success: false, Error: msg}
}
