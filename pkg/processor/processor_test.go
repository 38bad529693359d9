package processor

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/cardscan/go-cardscan/pkg/camera"
	"github.com/cardscan/go-cardscan/pkg/upload"
)

func decodeResult(t *testing.T, res *Result) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(res.ImageB64)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("result is not valid PNG: %v", err)
	}
	return img
}

func TestCaptureCropsToGuide(t *testing.T) {
	mock := upload.NewMock()
	p := New(mock)

	frame := camera.SyntheticFrame(1280, 720)
	res, err := p.Capture(context.Background(), frame)
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	// Default guide on 1280x720: origin (128,216), size 1024x288.
	if res.Width != 1024 || res.Height != 288 {
		t.Errorf("crop size = %dx%d, want 1024x288", res.Width, res.Height)
	}

	img := decodeResult(t, res)
	b := img.Bounds()
	if b.Dx() != 1024 || b.Dy() != 288 {
		t.Errorf("decoded size = %dx%d, want 1024x288", b.Dx(), b.Dy())
	}

	// Crop origin must map back to source pixel (128,216).
	wantFirst := frame.RGBAAt(128, 216)
	r, g, bl, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != wantFirst.R || uint8(g>>8) != wantFirst.G || uint8(bl>>8) != wantFirst.B {
		t.Errorf("crop origin pixel = (%d,%d,%d), want %v", r>>8, g>>8, bl>>8, wantFirst)
	}

	if mock.CallCount() != 1 {
		t.Errorf("uploader called %d times, want 1", mock.CallCount())
	}
}

func TestCaptureNilFrame(t *testing.T) {
	p := New(upload.NewMock())

	_, err := p.Capture(context.Background(), nil)
	if !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
	if p.Busy() {
		t.Error("busy flag must be clear after a failed capture")
	}
}

func TestCaptureRequiresUploader(t *testing.T) {
	p := &Processor{}
	if _, err := p.Capture(context.Background(), camera.SyntheticFrame(64, 64)); !errors.Is(err, ErrNoUploader) {
		t.Fatalf("expected ErrNoUploader, got %v", err)
	}
}

func TestCaptureBusyGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	mock := &upload.Mock{
		SendFunc: func(ctx context.Context, imageB64 string) error {
			close(started)
			<-release
			return nil
		},
	}
	p := New(mock)
	frame := camera.SyntheticFrame(640, 480)

	type capResult struct {
		res *Result
		err error
	}
	done := make(chan capResult, 1)
	go func() {
		res, err := p.Capture(context.Background(), frame)
		done <- capResult{res, err}
	}()

	<-started
	if !p.Busy() {
		t.Error("expected busy while first capture is in flight")
	}

	// Second rapid capture must be rejected without touching the first.
	if _, err := p.Capture(context.Background(), frame); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	close(release)
	first := <-done
	if first.err != nil {
		t.Fatalf("first capture corrupted by second: %v", first.err)
	}
	if first.res == nil || first.res.ImageB64 == "" {
		t.Fatal("first capture produced no output")
	}
	if p.Busy() {
		t.Error("busy flag must be clear after captures settle")
	}
}

func TestCaptureUploadFailureClearsBusy(t *testing.T) {
	wantErr := errors.New("backend down")
	mock := &upload.Mock{
		SendFunc: func(ctx context.Context, imageB64 string) error {
			return wantErr
		},
	}
	p := New(mock)
	p.Retain = true

	_, err := p.Capture(context.Background(), camera.SyntheticFrame(320, 240))
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if p.Busy() {
		t.Error("busy flag must be clear after upload failure")
	}
	if p.Last() != nil {
		t.Error("failed capture must not be retained")
	}
}

func TestCaptureRetainsResult(t *testing.T) {
	p := New(upload.NewMock())
	p.Retain = true

	res, err := p.Capture(context.Background(), camera.SyntheticFrame(320, 240))
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}

	last := p.Last()
	if last == nil || last.ID != res.ID {
		t.Error("retained result should match the capture")
	}
	if res.CapturedAt.After(time.Now()) {
		t.Error("capture timestamp in the future")
	}
}

func TestCaptureDoesNotRetainByDefault(t *testing.T) {
	p := New(upload.NewMock())

	if _, err := p.Capture(context.Background(), camera.SyntheticFrame(320, 240)); err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if p.Last() != nil {
		t.Error("results must not be retained unless configured")
	}
}

func TestCropExactRegion(t *testing.T) {
	src := camera.SyntheticFrame(100, 100)
	r := image.Rect(10, 20, 40, 50)
	out := Crop(src, r)

	if out.Bounds().Dx() != 30 || out.Bounds().Dy() != 30 {
		t.Fatalf("crop size = %v, want 30x30", out.Bounds())
	}
	if out.RGBAAt(0, 0) != src.RGBAAt(10, 20) {
		t.Error("crop origin does not match source region")
	}
	if out.RGBAAt(29, 29) != src.RGBAAt(39, 49) {
		t.Error("crop extent does not match source region")
	}
}
