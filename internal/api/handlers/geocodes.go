package handlers

import (
	"log"
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/validation"
)

// GeocodeHandler exposes single-address resolution plus cache diagnostics.
type GeocodeHandler struct {
	Validator *validation.Validator
	Geocoder  ports.Geocoder
	Cache     ports.GeocodeCache
}

// Geocode validates then resolves one address. Validation failures return
// 422 with per-field messages before any upstream call is made; resolution
// failures are part of the result value, not an HTTP error.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.GeocodeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	addr := req.Address.ToDomain()
	if result := h.Validator.ValidateAddress(addr); !result.Valid {
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ValidateAddressResponse{
			IsValid: false,
			Errors:  result.Errors,
		})
		return
	}

	res := h.Geocoder.Geocode(r.Context(), addr)

	out := dto.GeocodeResponse{
		Success:     res.Success,
		DisplayName: res.DisplayName,
		Error:       res.Error,
	}
	if res.Success {
		out.Coordinates = &dto.CoordinatesResponse{
			Latitude:  res.Coordinates.Lat,
			Longitude: res.Coordinates.Lon,
		}
	}

	writeJSON(w, r, http.StatusOK, out)
}

// HandleCache dispatches the cache diagnostics endpoint by method.
func (h *GeocodeHandler) HandleCache(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.CacheStats(w, r)
	case http.MethodDelete:
		h.ClearCache(w, r)
	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// CacheStats reports cache entry count and hit/miss counters.
func (h *GeocodeHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	size, err := h.Cache.CacheSize(r.Context())
	if err != nil {
		log.Printf("cache size failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CacheStatsResponse{
		Entries: size,
		Hits:    h.Cache.CacheHits(),
		Misses:  h.Cache.CacheMisses(),
	})
}

// ClearCache empties the geocode cache.
func (h *GeocodeHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodDelete) {
		return
	}

	if err := h.Cache.ClearCache(r.Context()); err != nil {
		log.Printf("cache clear failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
