package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/relocateme/internal/backend"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrStreamingUnsupported is returned when the response writer cannot flush.
type ErrStreamingUnsupported struct{}

func (e *ErrStreamingUnsupported) Error() string {
	return "streaming not supported"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var streaming *ErrStreamingUnsupported
	var upstream *backend.Error

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &streaming):
		return http.StatusNotImplemented
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
