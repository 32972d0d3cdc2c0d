package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/relocateme/internal/backend"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "form", Message: "malformed body"}
	assert.Equal(t, "validation error: form - malformed body", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrStreamingUnsupported(t *testing.T) {
	err := &ErrStreamingUnsupported{}
	assert.Equal(t, "streaming not supported", err.Error())
	assert.Equal(t, http.StatusNotImplemented, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrValidation",
			err:      &ErrValidation{Field: "form", Message: "bad"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ErrValidation",
			err:      fmt.Errorf("parse: %w", &ErrValidation{Field: "form", Message: "bad"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "backend error",
			err:      &backend.Error{Method: "GET", URL: "http://x/api/system/status", StatusCode: 503, Message: "unexpected status"},
			expected: http.StatusBadGateway,
		},
		{
			name:     "generic error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
