package session

import "errors"

// Sentinel errors for session operations.
var (
	// ErrAlreadyActive is returned when starting an active session.
	// At most one session may be active at a time.
	ErrAlreadyActive = errors.New("session: already active")

	// ErrNotCapturing is returned when a capture is requested while the
	// session is idle or already processing.
	ErrNotCapturing = errors.New("session: not capturing")
)
