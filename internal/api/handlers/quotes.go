package handlers

import (
	"errors"
	"log"
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/route"
	"courier-route-service/internal/services"
	"courier-route-service/internal/validation"
)

// QuoteHandler runs the full validate -> geocode -> distance pipeline for a
// pickup/dropoff pair.
type QuoteHandler struct {
	Validator *validation.Validator
	Geocoder  ports.Geocoder
	Engine    *route.Engine
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.QuoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := services.QuoteRoute(r.Context(), services.QuoteRequest{
		Pickup:  req.Pickup.ToDomain(),
		Dropoff: req.Dropoff.ToDomain(),
	}, h.Validator, h.Geocoder, h.Engine)

	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, r, http.StatusUnprocessableEntity, dto.QuoteErrorResponse{
				Error:         "address validation failed",
				PickupErrors:  ve.PickupErrors,
				DropoffErrors: ve.DropoffErrors,
			})
			return
		}

		var ge *services.GeocodeError
		if errors.As(err, &ge) {
			writeJSON(w, r, http.StatusUnprocessableEntity, dto.QuoteErrorResponse{
				Error: ge.Message,
			})
			return
		}

		log.Printf("quote route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{
		TotalMiles:      quote.Distance.TotalMiles,
		TotalKilometers: quote.Distance.TotalKilometers,
		Segments: dto.RouteSegmentsResponse{
			CompanyToPickup: quote.Distance.Segments.CompanyToPickup,
			PickupToDropoff: quote.Distance.Segments.PickupToDropoff,
		},
		DistanceDisplay:    quote.DistanceDisplay,
		DeliveryEstimate:   quote.DeliveryEstimate,
		PickupDisplayName:  quote.PickupDisplayName,
		DropoffDisplayName: quote.DropoffDisplayName,
	})
}
