package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL means the configured endpoint could not be parsed.
	ErrInvalidURL = errors.New("invalid model endpoint URL")

	// ErrMissingAPIKey means no credential is available. Checked before any
	// network I/O.
	ErrMissingAPIKey = errors.New("API key not found: set it in the environment")

	// ErrInvalidResponse means the endpoint replied without a usable message.
	ErrInvalidResponse = errors.New("invalid response from model endpoint")
)

// APIError is a non-2xx reply from the model endpoint.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model endpoint returned %d: %s", e.Status, e.Detail)
}
