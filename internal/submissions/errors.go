package submissions

import (
	"errors"
	"net/http"

	"github.com/holywrit/ideas/internal/workflow"
)

// Sentinel errors for submission endpoints.
var (
	ErrInvalidBody  = errors.New("invalid submission body")
	ErrInvalidFile  = errors.New("invalid file upload")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps submission errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidBody) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// StateHTTPStatus maps a terminal workflow state to the response status.
func StateHTTPStatus(state workflow.State) int {
	switch state {
	case workflow.StateSucceeded:
		return http.StatusOK
	case workflow.StateRejected:
		return http.StatusBadRequest
	case workflow.StateFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
