package services

import (
	"context"
	"fmt"

	"courier-route-service/internal/domain"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/route"
	"courier-route-service/internal/validation"
)

// QuoteRequest carries the pickup/dropoff pair for a route quote.
type QuoteRequest struct {
	Pickup  domain.Address
	Dropoff domain.Address
}

// RouteQuote is the pipeline's final product: the three-leg trip distance
// plus display strings ready for the pricing and scheduling workflow.
type RouteQuote struct {
	Distance           domain.RouteDistance
	DistanceDisplay    string
	DeliveryEstimate   string
	PickupCoordinates  domain.Coordinates
	DropoffCoordinates domain.Coordinates
	PickupDisplayName  string
	DropoffDisplayName string
}

// ValidationError reports per-field messages for whichever addresses failed
// validation. No network call was made.
type ValidationError struct {
	PickupErrors  map[string]string
	DropoffErrors map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"address validation failed: pickup=%d dropoff=%d field errors",
		len(e.PickupErrors), len(e.DropoffErrors),
	)
}

// GeocodeError reports that one leg of the trip could not be resolved to
// coordinates. Message is suitable for direct display.
type GeocodeError struct {
	Leg     string // "pickup" or "dropoff"
	Message string
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %s address: %s", e.Leg, e.Message)
}

// QuoteRoute runs the full address-to-route pipeline: validate both
// addresses (rejecting before any network call), resolve each to
// coordinates, and derive the trip distance and delivery estimate.
// No distance is produced when either leg fails to geocode.
func QuoteRoute(
	ctx context.Context,
	req QuoteRequest,
	validator *validation.Validator,
	geocoder ports.Geocoder,
	engine *route.Engine,
) (*RouteQuote, error) {
	pickupRes := validator.ValidateAddress(req.Pickup)
	dropoffRes := validator.ValidateAddress(req.Dropoff)
	if !pickupRes.Valid || !dropoffRes.Valid {
		return nil, &ValidationError{
			PickupErrors:  pickupRes.Errors,
			DropoffErrors: dropoffRes.Errors,
		}
	}

	results := geocoder.GeocodeAll(ctx, []domain.Address{req.Pickup, req.Dropoff})

	pickup, dropoff := results[0], results[1]
	if !pickup.Success {
		return nil, &GeocodeError{Leg: "pickup", Message: pickup.Error}
	}
	if !dropoff.Success {
		return nil, &GeocodeError{Leg: "dropoff", Message: dropoff.Error}
	}

	dist := engine.RouteDistance(pickup.Coordinates, dropoff.Coordinates)

	return &RouteQuote{
		Distance:           dist,
		DistanceDisplay:    route.FormatDistance(dist.TotalMiles),
		DeliveryEstimate:   route.EstimateDeliveryTime(dist.TotalMiles),
		PickupCoordinates:  pickup.Coordinates,
		DropoffCoordinates: dropoff.Coordinates,
		PickupDisplayName:  pickup.DisplayName,
		DropoffDisplayName: dropoff.DisplayName,
	}, nil
}
