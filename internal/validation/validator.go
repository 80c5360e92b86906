package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"courier-route-service/internal/domain"
)

// Field names used as keys in Result.Errors. They match the wire-level
// address field names so per-field messages map directly onto form fields.
const (
	FieldStreet  = "street"
	FieldCity    = "city"
	FieldState   = "state"
	FieldZipCode = "zipCode"
)

var (
	digitRe    = regexp.MustCompile(`\d`)
	cityCharRe = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	zipRe      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// Result aggregates per-field validation outcomes for one address.
// It is valid iff the Errors map is empty.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// Validator checks structural and plausibility constraints on postal
// addresses. It performs no I/O and is safe for concurrent use.
//
// The fake-address policy is injected as an ordered rule list so it can be
// tuned per deployment or disabled in tests.
type Validator struct {
	fakePatterns []FakePattern
}

// New returns a Validator using the default fake-address rules.
func New() *Validator {
	return &Validator{fakePatterns: DefaultFakePatterns}
}

// NewWithPatterns returns a Validator with a custom fake-address rule list.
// An empty list disables the plausibility checks entirely.
func NewWithPatterns(patterns []FakePattern) *Validator {
	return &Validator{fakePatterns: patterns}
}

// ValidateStreet checks a street line. A nil return means the value passed.
func (v *Validator) ValidateStreet(street string) error {
	trimmed := strings.TrimSpace(street)
	if trimmed == "" {
		return errors.New("Street address is required")
	}
	if utf8.RuneCountInString(trimmed) < 5 {
		return errors.New("Street address is too short")
	}
	if !digitRe.MatchString(trimmed) {
		return errors.New("Street address must include a number")
	}
	if msg := matchFake(v.fakePatterns, trimmed); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// ValidateCity checks a city name. A nil return means the value passed.
func (v *Validator) ValidateCity(city string) error {
	trimmed := strings.TrimSpace(city)
	if trimmed == "" {
		return errors.New("City is required")
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return errors.New("City name is too short")
	}
	if !cityCharRe.MatchString(trimmed) {
		return errors.New("City name contains invalid characters")
	}
	if msg := matchFake(v.fakePatterns, trimmed); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// ValidateState checks a two-letter US state code, case-insensitively.
func (v *Validator) ValidateState(state string) error {
	trimmed := strings.TrimSpace(state)
	if trimmed == "" {
		return errors.New("State is required")
	}
	if _, ok := stateCodes[strings.ToUpper(trimmed)]; !ok {
		return errors.New("Please enter a valid 2-letter state code")
	}
	return nil
}

// ValidateZipCode checks a ZIP code. Exactly 5 digits, or 5 digits, a
// hyphen, and 4 digits. Surrounding whitespace is not tolerated.
func (v *Validator) ValidateZipCode(zip string) error {
	if strings.TrimSpace(zip) == "" {
		return errors.New("ZIP code is required")
	}
	if !zipRe.MatchString(zip) {
		return errors.New("Please enter a valid ZIP code (12345 or 12345-6789)")
	}
	return nil
}

// ValidateAddress runs all four field checks and aggregates their messages.
// Every field is checked even when an earlier one failed, so the caller gets
// the complete set of actionable errors in one pass.
func (v *Validator) ValidateAddress(addr domain.Address) Result {
	errs := make(map[string]string)

	if err := v.ValidateStreet(addr.Street); err != nil {
		errs[FieldStreet] = err.Error()
	}
	if err := v.ValidateCity(addr.City); err != nil {
		errs[FieldCity] = err.Error()
	}
	if err := v.ValidateState(addr.State); err != nil {
		errs[FieldState] = err.Error()
	}
	if err := v.ValidateZipCode(addr.ZipCode); err != nil {
		errs[FieldZipCode] = err.Error()
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
