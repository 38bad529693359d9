package camera

import (
	"image"
	"image/color"
	"sync"
)

// Mock implements Source for testing and for running the daemon without
// camera hardware. All methods can be customized via function fields.
type Mock struct {
	// OpenFunc is called when Open is invoked. If nil, Open succeeds.
	OpenFunc func() error

	// ReadFunc is called when Read is invoked. If nil, returns a
	// synthetic gradient frame at the configured dimensions.
	ReadFunc func() (image.Image, error)

	// Width and Height are the dimensions of generated frames.
	Width  int
	Height int

	mu     sync.Mutex
	open   bool
	reads  int
	closes int
}

// NewMock creates a mock source producing 1280x720 synthetic frames.
func NewMock() *Mock {
	return &Mock{Width: 1280, Height: 720}
}

// Open calls OpenFunc if set, otherwise marks the source open.
func (m *Mock) Open() error {
	if m.OpenFunc != nil {
		if err := m.OpenFunc(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
	return nil
}

// Read returns the next frame.
func (m *Mock) Read() (image.Image, error) {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return nil, ErrNotOpen
	}
	m.reads++
	w, h := m.Width, m.Height
	m.mu.Unlock()

	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	return SyntheticFrame(w, h), nil
}

// SetConfig adopts the configured resolution for generated frames.
func (m *Mock) SetConfig(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Width = cfg.Width
	m.Height = cfg.Height
}

// Dims returns the configured frame dimensions.
func (m *Mock) Dims() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Width, m.Height
}

// Close marks the source closed. Safe to call repeatedly.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	m.closes++
	return nil
}

// Reads returns how many frames were read.
func (m *Mock) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

// Closes returns how many times Close was called.
func (m *Mock) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// IsOpen reports whether the source is currently open.
func (m *Mock) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// SyntheticFrame generates a deterministic gradient frame, useful for
// pipeline tests that need recognizable pixel values.
func SyntheticFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}
