// Package upload submits captured card images to the backend.
//
// The backend contract is a single HTTP POST with a JSON body
// {"image": "<base64 png>"}. The Uploader interface keeps the transport
// injectable so the capture pipeline can be tested without real I/O, and
// Mock stands in when no backend is configured.
package upload

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoEndpoint is returned when the upload URL is missing.
	ErrNoEndpoint = errors.New("upload: endpoint URL required")

	// ErrEmptyImage is returned when there is no image data to send.
	ErrEmptyImage = errors.New("upload: empty image")
)

// Uploader accepts one base64-encoded PNG and submits it.
type Uploader interface {
	// Send submits the image. A nil return means the backend accepted it.
	Send(ctx context.Context, imageB64 string) error
}

// APIError represents an error response from the upload backend.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the backend, if any.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upload: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upload: API error %d", e.StatusCode)
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the user should be told to try again.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || e.IsServerError()
}
