// snapshot captures one frame, crops it to the card guide, and writes the
// result to a local PNG. Useful for checking camera and guide placement
// without running the daemon.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/cardscan/go-cardscan/pkg/camera"
	"github.com/cardscan/go-cardscan/pkg/guide"
	"github.com/cardscan/go-cardscan/pkg/processor"
)

func main() {
	device := flag.Int("device", 0, "Capture device index")
	out := flag.String("out", "card.png", "Output file")
	sharpen := flag.Bool("sharpen", false, "Apply the sharpening pass")
	full := flag.Bool("full", false, "Write the full frame instead of the card crop")
	mock := flag.Bool("mock", false, "Use a synthetic camera source")
	flag.Parse()

	var source camera.Source
	if *mock {
		source = camera.NewMock()
	} else {
		cfg := camera.DefaultConfig()
		cfg.Device = *device
		source = camera.NewWebcam(cfg)
	}

	if err := source.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "camera: %v\n", err)
		os.Exit(1)
	}
	defer source.Close()

	frame, err := source.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read frame: %v\n", err)
		os.Exit(1)
	}

	b := frame.Bounds()
	snap := processor.Crop(frame, b) // repack to tight RGBA
	if *sharpen {
		processor.Sharpen(snap)
	}

	img := snap
	if !*full {
		bounds := guide.Default().PixelBounds(b.Dx(), b.Dy())
		img = processor.Crop(snap, bounds)
		fmt.Printf("cropped %dx%d frame to %dx%d at (%d,%d)\n",
			b.Dx(), b.Dy(), bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("saved to %s\n", *out)
}
