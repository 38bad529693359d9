// Package camera owns camera acquisition for the card capture session:
// runtime-configurable settings, the Source interface, and the gocv-backed
// webcam implementation.
package camera

// Facing expresses which device the capture flow prefers. On phones this
// maps to the rear/front camera; on machines with a single webcam the
// preference is a hint only.
const (
	FacingRear  = "rear"
	FacingFront = "front"
	FacingAny   = "any"
)

// Autofocus modes. Continuous focus keeps the card legible while the user
// positions it.
const (
	AfManual     = "manual"
	AfAuto       = "auto"
	AfContinuous = "continuous"
)

// Config holds all camera configuration parameters.
// These can be modified via the capture API at runtime.
type Config struct {
	// === Resolution ===
	Width     int `json:"width"`     // Ideal frame width in pixels
	Height    int `json:"height"`    // Ideal frame height in pixels
	Framerate int `json:"framerate"` // Target FPS for the render loop
	Quality   int `json:"quality"`   // JPEG quality 1-100 for preview frames

	// === Device selection ===
	// Device is the capture device index.
	Device int `json:"device"`

	// Facing is the preferred camera facing: "rear", "front", or "any".
	Facing string `json:"facing"`

	// === Autofocus ===
	// AfMode controls autofocus behavior.
	// Values: "manual", "auto", "continuous"
	AfMode string `json:"af_mode"`
}

// Resolution limits accepted from the API.
const (
	MaxWidth  = 4096
	MaxHeight = 2160
)

// DefaultConfig returns the recommended card-capture configuration.
// 1280x720 keeps the crop sharp enough for ID text while staying cheap
// to encode per frame.
func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Framerate: 30,
		Quality:   85,
		Device:    0,
		Facing:    FacingRear,
		AfMode:    AfContinuous,
	}
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Width < 160 || c.Width > MaxWidth {
		errors = append(errors, "width must be between 160 and 4096")
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errors = append(errors, "height must be between 120 and 2160")
	}
	if c.Framerate < 1 || c.Framerate > 120 {
		errors = append(errors, "framerate must be between 1 and 120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}
	if c.Device < 0 {
		errors = append(errors, "device must be >= 0")
	}

	validFacing := map[string]bool{FacingRear: true, FacingFront: true, FacingAny: true}
	if c.Facing != "" && !validFacing[c.Facing] {
		errors = append(errors, "facing must be rear, front, or any")
	}

	validAfModes := map[string]bool{AfManual: true, AfAuto: true, AfContinuous: true}
	if c.AfMode != "" && !validAfModes[c.AfMode] {
		errors = append(errors, "af_mode must be manual, auto, or continuous")
	}

	return errors
}
