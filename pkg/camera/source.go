package camera

import (
	"errors"
	"image"
)

// Sentinel errors for camera acquisition.
var (
	// ErrNoDevice is returned when the capture device cannot be opened
	// (missing hardware or permission denied).
	ErrNoDevice = errors.New("camera: device unavailable")

	// ErrNotOpen is returned when reading from a source that is not open.
	ErrNotOpen = errors.New("camera: source not open")

	// ErrEmptyFrame is returned when the device delivers no pixels.
	ErrEmptyFrame = errors.New("camera: empty frame")
)

// Source is a live camera stream. The capture session owns exactly one
// Source for its lifetime; nothing else reads or mutates it directly.
type Source interface {
	// Open acquires the device. Failure is recoverable: the caller may
	// surface it to the user and retry.
	Open() error

	// Read returns the current frame. Only valid between Open and Close.
	Read() (image.Image, error)

	// Dims returns the dimensions of the frames the source delivers.
	// Valid only after Open.
	Dims() (w, h int)

	// SetConfig replaces the acquisition settings. An open device keeps
	// its current negotiation; the new settings apply on the next Open.
	SetConfig(cfg Config)

	// Close releases the device. Must be safe to call when already
	// closed and must be called on teardown so the camera is not leaked.
	Close() error
}
