package processor

import "errors"

// Sentinel errors for capture processing.
var (
	// ErrNoFrame is returned when there is no frame to process
	// (the drawing surface for the snapshot is unavailable).
	ErrNoFrame = errors.New("processor: no frame available")

	// ErrBusy is returned when a capture is requested while the previous
	// one is still processing. The in-flight capture is unaffected.
	ErrBusy = errors.New("processor: capture already in progress")

	// ErrNoUploader is returned when no uploader is configured.
	ErrNoUploader = errors.New("processor: uploader required")
)
