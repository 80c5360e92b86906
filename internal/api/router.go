package api

import (
	"net/http"

	"courier-route-service/internal/api/handlers"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/route"
	"courier-route-service/internal/validation"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	validator *validation.Validator,
	geocoder ports.Geocoder,
	geocodeCache ports.GeocodeCache,
	engine *route.Engine,
) http.Handler {
	mux := http.NewServeMux()

	addressHandler := &handlers.AddressHandler{Validator: validator}
	geocodeHandler := &handlers.GeocodeHandler{
		Validator: validator,
		Geocoder:  geocoder,
		Cache:     geocodeCache,
	}
	quoteHandler := &handlers.QuoteHandler{
		Validator: validator,
		Geocoder:  geocoder,
		Engine:    engine,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/addresses/validate", addressHandler.Validate)
	mux.HandleFunc("/geocode", geocodeHandler.Geocode)
	mux.HandleFunc("/geocode/cache", geocodeHandler.HandleCache)
	mux.HandleFunc("/quotes", quoteHandler.Quote)

	return requestIDMiddleware(loggingMiddleware(mux))
}
