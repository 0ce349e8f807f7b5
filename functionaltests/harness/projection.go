package harness

import "github.com/go-gl/gl/v2.1/gl"

// CenteredOrtho maps one unit to one pixel with the origin at the center
// of the window.
func CenteredOrtho(width, height int) {
	w, h := float64(width), float64(height)
	setOrtho(width, height, -w/2, w/2, -h/2, h/2)
}

// WindowOrtho maps one unit to one pixel with the origin at the
// bottom-left corner.
func WindowOrtho(width, height int) {
	setOrtho(width, height, 0, float64(width), 0, float64(height))
}

func setOrtho(width, height int, left, right, bottom, top float64) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(left, right, bottom, top, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
}
