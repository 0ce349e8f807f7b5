package harness

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Tolerance is the largest per-channel difference a probe accepts.
const Tolerance = 16

// Probe samples one pixel of the final frame.
type Probe struct {
	Name string
	// At returns the pixel to sample for a framebuffer size, in image
	// coordinates (origin top-left).
	At   func(width, height int) image.Point
	Want color.NRGBA
}

// Check compares the sampled pixel with the expected color.
func (p Probe) Check(img image.Image) error {
	b := img.Bounds()
	pt := p.At(b.Dx(), b.Dy()).Add(b.Min)
	if !pt.In(b) {
		return fmt.Errorf("probe %s: point %v outside frame %v", p.Name, pt, b)
	}
	got := color.NRGBAModel.Convert(img.At(pt.X, pt.Y)).(color.NRGBA)
	if !near(got.R, p.Want.R) || !near(got.G, p.Want.G) || !near(got.B, p.Want.B) {
		return fmt.Errorf("probe %s at %v: got rgb(%d,%d,%d), want rgb(%d,%d,%d)",
			p.Name, pt, got.R, got.G, got.B, p.Want.R, p.Want.G, p.Want.B)
	}
	return nil
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -Tolerance && d <= Tolerance
}

// CheckProbes runs every probe and joins the failures.
func CheckProbes(img image.Image, probes []Probe) error {
	var errs []error
	for _, p := range probes {
		if err := p.Check(img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromCenter places a probe relative to the frame center. dy grows upwards,
// as in GL coordinates.
func FromCenter(dx, dy int) func(width, height int) image.Point {
	return func(width, height int) image.Point {
		return image.Pt(width/2+dx, height/2-dy)
	}
}

// FromOrigin places a probe relative to the bottom-left corner, in GL
// window coordinates.
func FromOrigin(x, y int) func(width, height int) image.Point {
	return func(width, height int) image.Point {
		return image.Pt(x, height-1-y)
	}
}

type frameImage struct {
	img *image.NRGBA
	ok  bool
}

// Common probe colors.
var (
	Black = color.NRGBA{0, 0, 0, 255}
	Green = color.NRGBA{0, 255, 0, 255}
	Red   = color.NRGBA{255, 0, 0, 255}
)
