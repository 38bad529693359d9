package processor

import "image"

// sharpenFactor is the weight of the neighbor difference added back to
// each channel. This is a crude unsharp-mask approximation over the
// previous pixel in raster order, not an edge-preserving filter.
const sharpenFactor = 0.5

// Sharpen applies the neighbor-difference sharpening pass in place.
//
// For every pixel from the second onward in raster order, each color
// channel becomes v + (v-prev)*0.5, where prev is the same channel of the
// preceding pixel's original value. The first pixel and all alpha bytes
// are left untouched. Results are clamped to [0,255]; the unclamped
// arithmetic would wrap around on hard edges.
//
// The image must be tightly packed (Stride == 4*width), which holds for
// any image allocated with image.NewRGBA; raster order then runs straight
// through Pix, continuing across row boundaries.
func Sharpen(img *image.RGBA) {
	if img == nil || len(img.Pix) < 8 {
		return
	}

	orig := make([]uint8, len(img.Pix))
	copy(orig, img.Pix)

	for i := 4; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(orig[i+c])
			prev := float64(orig[i+c-4])
			img.Pix[i+c] = clampByte(v + (v-prev)*sharpenFactor)
		}
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
