package roster

import (
	"errors"
	"net/http"
)

// Domain errors for roster operations.
var (
	ErrClassNotFound   = errors.New("class not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrDuplicateClass  = errors.New("class already exists")
	ErrInvalidRequest  = errors.New("invalid request")
)

// MapHTTPStatus maps roster domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrClassNotFound) || errors.Is(err, ErrStudentNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicateClass) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
