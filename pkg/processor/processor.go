// Package processor turns a live video frame into an uploaded card image:
// snapshot, optional sharpening, crop to the guide rectangle, PNG encoding,
// base64, and submission to the backend.
package processor

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/cardscan/go-cardscan/internal/log"
	"github.com/cardscan/go-cardscan/pkg/guide"
	"github.com/cardscan/go-cardscan/pkg/upload"
)

// Result is one processed capture.
type Result struct {
	// ID identifies the capture.
	ID string `json:"id"`

	// ImageB64 is the cropped card region as a base64-encoded PNG.
	ImageB64 string `json:"image"`

	// Width and Height are the crop dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// CapturedAt is when the frame was snapshotted.
	CapturedAt time.Time `json:"captured_at"`
}

// Processor crops and submits captured frames.
type Processor struct {
	// Guide is the rectangle to crop to. Pixel coordinates are recomputed
	// from the live frame dimensions on every capture.
	Guide guide.Rect

	// Sharpen enables the sharpening pass before cropping.
	Sharpen bool

	// Retain keeps the last result in memory for preview.
	Retain bool

	// Uploader receives the encoded image.
	Uploader upload.Uploader

	busy atomic.Bool

	mu   sync.RWMutex
	last *Result
}

// New creates a processor with the default guide.
func New(up upload.Uploader) *Processor {
	return &Processor{
		Guide:    guide.Default(),
		Uploader: up,
	}
}

// Busy reports whether a capture is currently processing.
func (p *Processor) Busy() bool {
	return p.busy.Load()
}

// Last returns the most recent retained result, or nil.
func (p *Processor) Last() *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Capture processes one frame: snapshot, optional sharpen, crop to the
// guide, encode, upload. It is synchronous from the caller's perspective.
//
// Only one capture runs at a time; a second call while one is in flight
// returns ErrBusy and leaves the first capture's output intact. The busy
// flag is cleared unconditionally once the upload settles, so the pipeline
// can never wedge in a processing state.
func (p *Processor) Capture(ctx context.Context, frame image.Image) (*Result, error) {
	if p.Uploader == nil {
		return nil, ErrNoUploader
	}
	if !p.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	if frame == nil {
		return nil, ErrNoFrame
	}

	start := time.Now()

	snap := snapshot(frame)
	if p.Sharpen {
		Sharpen(snap)
	}

	b := snap.Bounds()
	bounds := p.Guide.PixelBounds(b.Dx(), b.Dy())
	card := Crop(snap, bounds)

	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return nil, fmt.Errorf("processor: encode png: %w", err)
	}

	res := &Result{
		ID:         uuid.NewString(),
		ImageB64:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		CapturedAt: start,
	}

	if err := p.Uploader.Send(ctx, res.ImageB64); err != nil {
		return nil, fmt.Errorf("processor: %w", err)
	}

	if p.Retain {
		p.mu.Lock()
		p.last = res
		p.mu.Unlock()
	}

	log.Info("capture processed",
		"id", res.ID,
		"crop", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"sharpen", p.Sharpen,
		"elapsed", time.Since(start))
	return res, nil
}

// Crop extracts the pixel region bounded by r into a new image whose
// dimensions equal exactly r.Dx() x r.Dy().
func Crop(img image.Image, r image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// snapshot copies the frame into a tightly packed RGBA surface sized to
// the frame's pixel dimensions, as Sharpen requires.
func snapshot(frame image.Image) *image.RGBA {
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), frame, b.Min, draw.Src)
	return dst
}
