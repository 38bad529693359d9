// Package guide defines the card positioning guide: a fixed rectangle in
// fractional frame coordinates that tells the user where to hold the ID card
// and tells the processor which pixel region to crop.
package guide

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Sentinel errors for invalid guide rectangles.
var (
	// ErrOutOfRange is returned when a corner lies outside [0,1].
	ErrOutOfRange = errors.New("guide: corner outside [0,1]")

	// ErrDegenerate is returned when left/right or top/bottom are not ordered.
	ErrDegenerate = errors.New("guide: corners must order left<right, top<bottom")

	// ErrSkewed is returned when the rectangle is not axis-aligned.
	// Rotated guides would need a perspective transform in the crop step,
	// which is unsupported.
	ErrSkewed = errors.New("guide: rectangle must be axis-aligned")
)

// Point is a 2D point in fractional frame coordinates (0-1).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned guide rectangle given by its four corners,
// each expressed as a fraction of the frame width/height.
type Rect struct {
	TopLeft     Point `json:"top_left"`
	TopRight    Point `json:"top_right"`
	BottomRight Point `json:"bottom_right"`
	BottomLeft  Point `json:"bottom_left"`
}

// Default returns the fixed ID-card guide: a centered band covering
// 80% of the frame width and 40% of its height.
func Default() Rect {
	return Rect{
		TopLeft:     Point{X: 0.1, Y: 0.3},
		TopRight:    Point{X: 0.9, Y: 0.3},
		BottomRight: Point{X: 0.9, Y: 0.7},
		BottomLeft:  Point{X: 0.1, Y: 0.7},
	}
}

// Validate checks the rectangle invariants: all corners within [0,1],
// left<right and top<bottom, and axis alignment.
func (r Rect) Validate() error {
	for _, p := range []Point{r.TopLeft, r.TopRight, r.BottomRight, r.BottomLeft} {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return fmt.Errorf("%w: (%v,%v)", ErrOutOfRange, p.X, p.Y)
		}
	}
	if r.TopLeft.X >= r.TopRight.X || r.TopLeft.Y >= r.BottomLeft.Y {
		return ErrDegenerate
	}
	if r.TopLeft.Y != r.TopRight.Y || r.BottomLeft.Y != r.BottomRight.Y ||
		r.TopLeft.X != r.BottomLeft.X || r.TopRight.X != r.BottomRight.X {
		return ErrSkewed
	}
	return nil
}

// PixelBounds maps the fractional corners to pixel coordinates for a frame
// of the given dimensions. Bounds are recomputed on every call because the
// frame size may change between frames; callers must not cache the result.
func (r Rect) PixelBounds(w, h int) image.Rectangle {
	x0 := scale(r.TopLeft.X, w)
	y0 := scale(r.TopLeft.Y, h)
	x1 := scale(r.TopRight.X, w)
	y1 := scale(r.BottomLeft.Y, h)
	return image.Rect(x0, y0, x1, y1)
}

// Corners returns the four corner pixel positions for a frame of the given
// dimensions, in top-left, top-right, bottom-right, bottom-left order.
func (r Rect) Corners(w, h int) [4]image.Point {
	b := r.PixelBounds(w, h)
	return [4]image.Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

func scale(frac float64, size int) int {
	return int(math.Round(frac * float64(size)))
}
