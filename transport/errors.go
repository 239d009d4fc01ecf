package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned when a request stays throttled after the
	// full retry budget.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthenticated is returned for 401 responses on requests that
	// expect a valid credential.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrCSRFBootstrap wraps failures to obtain the CSRF cookie.
	ErrCSRFBootstrap = errors.New("csrf bootstrap failed")
)

// APIError is the server's structured error envelope. Errors carries
// per-field validation messages when the server supplies them.
type APIError struct {
	Status  int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// FieldErrors returns the validation messages for one field, or nil.
func (e *APIError) FieldErrors(field string) []string {
	if e == nil || e.Errors == nil {
		return nil
	}
	return e.Errors[field]
}

// AsAPIError unwraps err into an [*APIError] if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
