package dto

type QuoteRequest struct {
	Pickup  *AddressRequest `json:"pickup" validate:"required"`
	Dropoff *AddressRequest `json:"dropoff" validate:"required"`
}

type RouteSegmentsResponse struct {
	CompanyToPickup float64 `json:"companyToPickup"`
	PickupToDropoff float64 `json:"pickupToDropoff"`
}

type QuoteResponse struct {
	TotalMiles         float64               `json:"totalMiles"`
	TotalKilometers    float64               `json:"totalKilometers"`
	Segments           RouteSegmentsResponse `json:"segments"`
	DistanceDisplay    string                `json:"distanceDisplay"`
	DeliveryEstimate   string                `json:"deliveryEstimate"`
	PickupDisplayName  string                `json:"pickupDisplayName"`
	DropoffDisplayName string                `json:"dropoffDisplayName"`
}

type QuoteErrorResponse struct {
	Error         string            `json:"error"`
	PickupErrors  map[string]string `json:"pickupErrors,omitempty"`
	DropoffErrors map[string]string `json:"dropoffErrors,omitempty"`
}
