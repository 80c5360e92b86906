package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/platform/obs"
)

// One entry of the service's JSON response array. Coordinates arrive as
// numeric-parseable strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

const notFoundMessage = "Address not found. Please verify the address is correct."

// lookup performs a single search request for addr and classifies the
// response. The second return reports whether the outcome is definitive
// (attributable to the address/service pairing and therefore cacheable) as
// opposed to a transient fault worth retrying later.
func (c *Client) lookup(ctx context.Context, addr domain.Address) (res domain.GeocodingResult, definitive bool) {
	var err error
	defer obs.Time(ctx, "geocode.lookup")(&err)

	req, err := c.newSearchRequest(ctx, addr)
	if err != nil {
		return domain.GeocodeFailure(err.Error()), false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// DNS failure, timeout, connection reset: retryable, never cached.
		return domain.GeocodeFailure(err.Error()), false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
		return domain.GeocodeFailure(err.Error()), true
	}

	var places []place
	if err = json.NewDecoder(resp.Body).Decode(&places); err != nil {
		err = fmt.Errorf("invalid response from geocoding service: %v", err)
		return domain.GeocodeFailure(err.Error()), true
	}

	if len(places) == 0 {
		return domain.GeocodeFailure(notFoundMessage), true
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		err = fmt.Errorf("invalid latitude in geocoding response: %v", err)
		return domain.GeocodeFailure(err.Error()), true
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		err = fmt.Errorf("invalid longitude in geocoding response: %v", err)
		return domain.GeocodeFailure(err.Error()), true
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}
	return domain.GeocodeSuccess(coords, places[0].DisplayName), true
}

// newSearchRequest builds a structured search query identifying the address
// by its individual fields, requesting at most one JSON candidate.
func (c *Client) newSearchRequest(ctx context.Context, addr domain.Address) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}

	q := url.Values{}
	q.Set("street", addr.Street)
	q.Set("city", addr.City)
	q.Set("state", addr.State)
	q.Set("postalcode", addr.ZipCode)
	q.Set("country", "United States")
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	req.URL.RawQuery = q.Encode()

	// The service rejects unidentified clients.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}
