package guide

import (
	"errors"
	"image"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default guide should validate, got %v", err)
	}
}

func TestPixelBounds720p(t *testing.T) {
	// 1280x720 with the default guide must land exactly on
	// origin (128,216) with size 1024x288.
	b := Default().PixelBounds(1280, 720)

	if b.Min.X != 128 || b.Min.Y != 216 {
		t.Errorf("expected origin (128,216), got (%d,%d)", b.Min.X, b.Min.Y)
	}
	if b.Dx() != 1024 || b.Dy() != 288 {
		t.Errorf("expected size 1024x288, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPixelBoundsScalesWithFrame(t *testing.T) {
	r := Default()

	tests := []struct {
		w, h int
		want image.Rectangle
	}{
		{1280, 720, image.Rect(128, 216, 1152, 504)},
		{1920, 1080, image.Rect(192, 324, 1728, 756)},
		{640, 480, image.Rect(64, 144, 576, 336)},
	}

	for _, tt := range tests {
		got := r.PixelBounds(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("PixelBounds(%d,%d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestCornersMatchBounds(t *testing.T) {
	r := Default()
	b := r.PixelBounds(1280, 720)
	c := r.Corners(1280, 720)

	if c[0] != b.Min {
		t.Errorf("top-left corner %v != bounds min %v", c[0], b.Min)
	}
	if c[2] != b.Max {
		t.Errorf("bottom-right corner %v != bounds max %v", c[2], b.Max)
	}
	if c[1] != (image.Point{X: b.Max.X, Y: b.Min.Y}) {
		t.Errorf("unexpected top-right corner %v", c[1])
	}
	if c[3] != (image.Point{X: b.Min.X, Y: b.Max.Y}) {
		t.Errorf("unexpected bottom-left corner %v", c[3])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		wantErr error
	}{
		{
			name:    "valid default",
			rect:    Default(),
			wantErr: nil,
		},
		{
			name: "corner out of range",
			rect: Rect{
				TopLeft:     Point{X: -0.1, Y: 0.3},
				TopRight:    Point{X: 0.9, Y: 0.3},
				BottomRight: Point{X: 0.9, Y: 0.7},
				BottomLeft:  Point{X: -0.1, Y: 0.7},
			},
			wantErr: ErrOutOfRange,
		},
		{
			name: "left right swapped",
			rect: Rect{
				TopLeft:     Point{X: 0.9, Y: 0.3},
				TopRight:    Point{X: 0.1, Y: 0.3},
				BottomRight: Point{X: 0.1, Y: 0.7},
				BottomLeft:  Point{X: 0.9, Y: 0.7},
			},
			wantErr: ErrDegenerate,
		},
		{
			name: "skewed",
			rect: Rect{
				TopLeft:     Point{X: 0.1, Y: 0.3},
				TopRight:    Point{X: 0.9, Y: 0.35},
				BottomRight: Point{X: 0.9, Y: 0.7},
				BottomLeft:  Point{X: 0.1, Y: 0.7},
			},
			wantErr: ErrSkewed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rect.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
