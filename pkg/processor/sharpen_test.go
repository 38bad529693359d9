package processor

import (
	"image"
	"image/color"
	"testing"
)

func TestSharpenFirstPixelUntouched(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	Sharpen(img)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("first pixel must be untouched, got %v", got)
	}
}

func TestSharpenAlphaUntouched(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	alphas := []uint8{255, 128, 64, 32, 16, 8}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(40 * i), G: 5, B: 250, A: alphas[i]})
			i++
		}
	}

	Sharpen(img)

	i = 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := img.RGBAAt(x, y).A; got != alphas[i] {
				t.Errorf("alpha at (%d,%d) changed: got %d want %d", x, y, got, alphas[i])
			}
			i++
		}
	}
}

func TestSharpenFormula(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 200, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 110, G: 40, B: 200, A: 255})

	Sharpen(img)

	// v + (v-prev)*0.5
	want := color.RGBA{R: 115, G: 35, B: 200, A: 255}
	if got := img.RGBAAt(1, 0); got != want {
		t.Errorf("sharpened pixel = %v, want %v", got, want)
	}
}

func TestSharpenClamps(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	// R overflows (250 + 125 = 375), G underflows (10 - 95 = -85).
	img.SetRGBA(0, 0, color.RGBA{R: 0, G: 200, B: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 250, G: 10, B: 0, A: 255})

	Sharpen(img)

	got := img.RGBAAt(1, 0)
	if got.R != 255 {
		t.Errorf("overflowing channel should clamp to 255, got %d", got.R)
	}
	if got.G != 0 {
		t.Errorf("underflowing channel should clamp to 0, got %d", got.G)
	}
}

func TestSharpenUsesOriginalNeighborValues(t *testing.T) {
	// Three pixels in a ramp: the third must be sharpened against the
	// second's original value, not its already-sharpened one.
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 100, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 110, A: 255})
	img.SetRGBA(2, 0, color.RGBA{R: 120, A: 255})

	Sharpen(img)

	// 120 + (120-110)*0.5 = 125 (not 120 + (120-115)*0.5)
	if got := img.RGBAAt(2, 0).R; got != 125 {
		t.Errorf("third pixel R = %d, want 125", got)
	}
}

func TestSharpenCrossesRowBoundary(t *testing.T) {
	// Raster order continues across rows: the first pixel of row 1 is
	// sharpened against the last pixel of row 0.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 50, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 50, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 100, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 100, A: 255})

	Sharpen(img)

	// 100 + (100-50)*0.5 = 125
	if got := img.RGBAAt(0, 1).R; got != 125 {
		t.Errorf("row-boundary pixel R = %d, want 125", got)
	}
	// 100 + (100-100)*0.5 = 100
	if got := img.RGBAAt(1, 1).R; got != 100 {
		t.Errorf("flat pixel R = %d, want 100", got)
	}
}

func TestSharpenUniformImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 42, G: 42, B: 42, A: 255})
		}
	}

	Sharpen(img)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := img.RGBAAt(x, y); got != (color.RGBA{R: 42, G: 42, B: 42, A: 255}) {
				t.Fatalf("uniform image changed at (%d,%d): %v", x, y, got)
			}
		}
	}
}
