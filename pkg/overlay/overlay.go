// Package overlay composes the positioning-guide overlay onto live frames:
// a dimmed full-frame mask with a clear window at the guide rectangle,
// the rectangle outline, corner markers, and an instruction line.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/cardscan/go-cardscan/pkg/guide"
)

// Drawing constants. The mask alpha matches the usual "dim everything but
// the card" look; the corner discs are big enough to read on a phone screen.
const (
	maskAlpha    = 128
	strokeWidth  = 2
	cornerRadius = 8
	textMargin   = 12
)

// DefaultInstruction is the fixed line rendered above the guide window.
const DefaultInstruction = "Place your ID card inside the frame"

var (
	maskColor   = color.RGBA{A: maskAlpha}
	strokeColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Compose renders the guide overlay over src and returns a new frame.
// The output surface always matches the current frame dimensions, so
// callers may feed frames of varying size.
func Compose(src image.Image, g guide.Rect, instruction string) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	window := g.PixelBounds(b.Dx(), b.Dy())

	dimOutside(dst, window)
	strokeRect(dst, window)
	for _, c := range g.Corners(b.Dx(), b.Dy()) {
		fillDisc(dst, c, cornerRadius)
	}
	drawInstruction(dst, window, instruction)

	return dst
}

// dimOutside paints the semi-transparent mask over everything except the
// guide window, leaving the card region at full brightness.
func dimOutside(dst *image.RGBA, window image.Rectangle) {
	full := dst.Bounds()
	mask := image.NewUniform(maskColor)

	regions := []image.Rectangle{
		image.Rect(full.Min.X, full.Min.Y, full.Max.X, window.Min.Y), // above
		image.Rect(full.Min.X, window.Max.Y, full.Max.X, full.Max.Y), // below
		image.Rect(full.Min.X, window.Min.Y, window.Min.X, window.Max.Y), // left
		image.Rect(window.Max.X, window.Min.Y, full.Max.X, window.Max.Y), // right
	}
	for _, r := range regions {
		if r.Empty() {
			continue
		}
		draw.Draw(dst, r, mask, image.Point{}, draw.Over)
	}
}

// strokeRect draws the guide outline just inside the window bounds.
func strokeRect(dst *image.RGBA, r image.Rectangle) {
	stroke := image.NewUniform(strokeColor)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+strokeWidth), // top
		image.Rect(r.Min.X, r.Max.Y-strokeWidth, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+strokeWidth, r.Max.Y), // left
		image.Rect(r.Max.X-strokeWidth, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), stroke, image.Point{}, draw.Src)
	}
}

// fillDisc draws a filled corner marker centered at p.
func fillDisc(dst *image.RGBA, p image.Point, radius int) {
	b := dst.Bounds()
	rr := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > rr {
				continue
			}
			x, y := p.X+dx, p.Y+dy
			if image.Pt(x, y).In(b) {
				dst.SetRGBA(x, y, strokeColor)
			}
		}
	}
}

// drawInstruction renders the instruction line centered above the window.
// If there is no room above the window the line is skipped.
func drawInstruction(dst *image.RGBA, window image.Rectangle, text string) {
	if text == "" {
		return
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()

	x := window.Min.X + (window.Dx()-width)/2
	y := window.Min.Y - textMargin
	if y-face.Metrics().Ascent.Ceil() < dst.Bounds().Min.Y {
		return
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(strokeColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
