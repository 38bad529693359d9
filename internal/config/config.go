// Package config provides configuration helpers for go-cardscan commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the capture daemon.
const (
	DefaultPort       = "8090"
	DefaultDevice     = 0
	DefaultHandoffURL = "https://capture.example.com/m"
)

// Port returns the HTTP listen port from PORT env var or the default.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// CameraDevice returns the capture device index from CAMERA_DEVICE env var.
// Falls back to device 0 if not set or unparsable.
func CameraDevice() int {
	if d := os.Getenv("CAMERA_DEVICE"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			return n
		}
	}
	return DefaultDevice
}

// UploadURL returns the upload endpoint from UPLOAD_URL env var.
// An empty value means captures go to the mock uploader.
func UploadURL() string {
	return os.Getenv("UPLOAD_URL")
}

// HandoffURL returns the mobile capture URL encoded into the desktop QR code.
func HandoffURL() string {
	if u := os.Getenv("HANDOFF_URL"); u != "" {
		return u
	}
	return DefaultHandoffURL
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
