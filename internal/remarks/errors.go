package remarks

import (
	"errors"
	"net/http"
)

// Domain errors for remarks extraction.
var (
	ErrNotConfigured   = errors.New("remarks extraction is not configured")
	ErrInvalidDocument = errors.New("invalid document")
	ErrExtraction      = errors.New("remarks extraction failed")
)

// MapHTTPStatus maps extraction errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidDocument) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrExtraction) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
