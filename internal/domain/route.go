package domain

// Per-leg mileage of a three-point route (origin hub -> pickup -> dropoff).
type RouteSegments struct {
	CompanyToPickup float64
	PickupToDropoff float64
}

// Represents the computed distance of a delivery trip.
// A RouteDistance is the output of the distance engine and carries the total
// in both units plus the individual legs. Every figure is rounded to one
// decimal place independently, so the reported total may differ from the sum
// of the reported segments by up to 0.1 mile.
type RouteDistance struct {
	TotalMiles      float64
	TotalKilometers float64
	Segments        RouteSegments
}
