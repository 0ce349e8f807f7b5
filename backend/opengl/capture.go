package opengl

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-gl/gl/v2.1/gl"
)

// Capture reads the current framebuffer into an image with the origin at
// the top-left corner.
func (w *Window) Capture() *image.NRGBA {
	width, height := w.Size()
	return ReadPixels(0, 0, width, height)
}

// ReadPixels reads an RGBA rectangle of the framebuffer, given in GL window
// coordinates (origin bottom-left).
func ReadPixels(x, y, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	pix := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return fromBottomUp(pix, width, height)
}

// fromBottomUp turns GL row order (bottom row first) into image order.
func fromBottomUp(pix []byte, width, height int) *image.NRGBA {
	img := &image.NRGBA{
		Pix:    pix,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return imaging.FlipV(img)
}

// SaveImage writes img to path. The format follows the file extension.
func SaveImage(path string, img image.Image) error {
	return imaging.Save(img, path)
}
