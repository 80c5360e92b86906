package dto

type GeocodeRequest struct {
	Address *AddressRequest `json:"address" validate:"required"`
}

type CoordinatesResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GeocodeResponse struct {
	Success     bool                 `json:"success"`
	Coordinates *CoordinatesResponse `json:"coordinates,omitempty"`
	DisplayName string               `json:"displayName,omitempty"`
	Error       string               `json:"error,omitempty"`
}

type CacheStatsResponse struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
