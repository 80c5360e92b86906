package route

import (
	"math"

	"courier-route-service/internal/domain"
)

const (
	// Mean Earth radius in miles, used by the haversine computation.
	earthRadiusMiles = 3958.8

	kilometersPerMile = 1.60934
)

// Distance returns the great-circle distance between two points in miles,
// via the haversine formula. Inputs are decimal degrees; no range validation
// is performed, so out-of-range coordinates yield mathematically defined but
// meaningless results.
func Distance(a, b domain.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// MilesToKilometers converts miles to kilometers.
func MilesToKilometers(miles float64) float64 {
	return miles * kilometersPerMile
}

// KilometersToMiles converts kilometers to miles. Exact inverse of
// MilesToKilometers up to floating-point rounding.
func KilometersToMiles(km float64) float64 {
	return km / kilometersPerMile
}

// Engine computes route distances from a fixed origin hub.
// It is stateless beyond the hub coordinate and safe for concurrent use.
type Engine struct {
	Origin domain.Coordinates
}

func NewEngine(origin domain.Coordinates) *Engine {
	return &Engine{Origin: origin}
}

// RouteDistance computes the three-leg trip hub -> pickup -> dropoff.
// The two legs are computed independently and summed before conversion;
// every reported figure is rounded to one decimal place per field.
func (e *Engine) RouteDistance(pickup, dropoff domain.Coordinates) domain.RouteDistance {
	companyToPickup := Distance(e.Origin, pickup)
	pickupToDropoff := Distance(pickup, dropoff)
	total := companyToPickup + pickupToDropoff

	return domain.RouteDistance{
		TotalMiles:      round1(total),
		TotalKilometers: round1(MilesToKilometers(total)),
		Segments: domain.RouteSegments{
			CompanyToPickup: round1(companyToPickup),
			PickupToDropoff: round1(pickupToDropoff),
		},
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
