package textvec

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/textvec/internal/domain"
)

// Sentinel errors. Use errors.Is() to check.
var (
	// ErrInvalidInput is returned for 400 validation failures and malformed requests.
	ErrInvalidInput = domain.ErrInvalidInput
	// ErrNotFound is returned when the route does not exist on the server.
	ErrNotFound = domain.ErrNotFound
	// ErrUnauthorized is returned when the API key is missing or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServer is returned for 5xx responses.
	ErrServer = errors.New("server error")
)

// APIError is a non-2xx response from the textvec API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("textvec: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap maps the response to a sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 400 || e.StatusCode == 413:
		return ErrInvalidInput
	case e.StatusCode == 401:
		return ErrUnauthorized
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode >= 500:
		return ErrServer
	default:
		return nil
	}
}
