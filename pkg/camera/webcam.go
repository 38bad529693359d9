package camera

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/cardscan/go-cardscan/internal/log"
)

// Webcam is a Source backed by a local V4L2/AVFoundation device via gocv.
type Webcam struct {
	cfg Config

	mu     sync.Mutex
	device *gocv.VideoCapture
	frame  *gocv.Mat // reusable matrix to avoid per-frame allocation
	width  int
	height int
}

// NewWebcam creates a webcam source for the configured device.
// The device is not opened until Open is called.
func NewWebcam(cfg Config) *Webcam {
	return &Webcam{cfg: cfg}
}

// Open acquires the device and applies the requested resolution and
// autofocus mode. The device may deliver a different resolution than
// requested; Dims reports what it actually negotiated.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.device != nil {
		return nil
	}

	cam, err := gocv.VideoCaptureDevice(w.cfg.Device)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrNoDevice, w.cfg.Device, err)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(w.cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(w.cfg.Height))
	if w.cfg.Framerate > 0 {
		cam.Set(gocv.VideoCaptureFPS, float64(w.cfg.Framerate))
	}
	switch w.cfg.AfMode {
	case AfContinuous, AfAuto:
		cam.Set(gocv.VideoCaptureAutoFocus, 1)
	case AfManual:
		cam.Set(gocv.VideoCaptureAutoFocus, 0)
	}

	w.width = int(cam.Get(gocv.VideoCaptureFrameWidth))
	w.height = int(cam.Get(gocv.VideoCaptureFrameHeight))
	if w.width == 0 || w.height == 0 {
		w.width = w.cfg.Width
		w.height = w.cfg.Height
	}

	mat := gocv.NewMat()
	w.device = cam
	w.frame = &mat

	log.Info("camera opened",
		"device", w.cfg.Device,
		"width", w.width,
		"height", w.height,
		"af_mode", w.cfg.AfMode)
	return nil
}

// Read returns the current frame as a standard Go image.
func (w *Webcam) Read() (image.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.device == nil {
		return nil, ErrNotOpen
	}
	if !w.device.Read(w.frame) {
		return nil, fmt.Errorf("%w: read failed", ErrEmptyFrame)
	}
	if w.frame.Empty() {
		return nil, ErrEmptyFrame
	}

	img, err := w.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("camera: convert frame: %w", err)
	}

	// Track dimension changes so crops use the live frame size.
	b := img.Bounds()
	w.width, w.height = b.Dx(), b.Dy()

	return img, nil
}

// SetConfig replaces the device configuration. An open device keeps its
// current negotiation; the new settings apply the next time Open runs.
func (w *Webcam) SetConfig(cfg Config) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
}

// Dims returns the negotiated frame dimensions.
func (w *Webcam) Dims() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// Close releases the device. Safe to call repeatedly.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.device == nil {
		return nil
	}
	err := w.device.Close()
	w.frame.Close()
	w.device = nil
	w.frame = nil

	log.Info("camera closed", "device", w.cfg.Device)
	return err
}
