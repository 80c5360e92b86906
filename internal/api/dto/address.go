package dto

import "courier-route-service/internal/domain"

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (a AddressRequest) ToDomain() domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
	}
}

type ValidateAddressRequest struct {
	Address *AddressRequest `json:"address" validate:"required"`
}

type ValidateAddressResponse struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}
