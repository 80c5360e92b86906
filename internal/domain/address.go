package domain

import "fmt"

// Represents a single postal address handled by the system.
// An Address is an immutable value with no identity beyond its fields;
// it may be unvalidated (as received from a caller) or validated.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// Format renders the address as "street, city, state zip" verbatim,
// with no normalization. The rendered string is the display form and,
// lower-cased, the basis of the geocode cache key.
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.ZipCode)
}
