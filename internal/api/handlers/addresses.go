package handlers

import (
	"net/http"

	"courier-route-service/internal/api/dto"
	"courier-route-service/internal/validation"
)

// AddressHandler exposes the address validator over HTTP.
type AddressHandler struct {
	Validator *validation.Validator
}

// Validate checks one address and returns the per-field error map.
// A structurally invalid address is still a 200: validation failure is an
// expected outcome, not a request error.
func (h *AddressHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ValidateAddressRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.Validator.ValidateAddress(req.Address.ToDomain())

	writeJSON(w, r, http.StatusOK, dto.ValidateAddressResponse{
		IsValid: result.Valid,
		Errors:  result.Errors,
	})
}
