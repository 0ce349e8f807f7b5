// Command ft001-big-green-diamond draws a small (20 pixel) red square.
// If the vertex and fragment shaders work, it is transformed into a large
// (300 pixel) green diamond in the middle of the window.
//
// Usage:
//
//	go run ./functionaltests/ft001-big-green-diamond/ [-fullscreen] [-check] [-capture out.png]
//
// Press Escape to close the window.
package main

import (
	_ "embed"
	"os"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/functionaltests/harness"
)

//go:embed allGreen.fsh
var fragmentSource string

//go:embed zoomAndRotate.vsh
var vertexSource string

const (
	zoom  = 15
	angle = 45
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(harness.Main(harness.Test{
		Name:           "ft001-big-green-diamond",
		Description:    "A 20 pixel red square should appear as a 300 pixel green diamond.",
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		Resize:         harness.CenteredOrtho,
		Setup:          setZoomRotate,
		Draw:           drawRedSquare,
		Probes: []harness.Probe{
			{Name: "center", At: harness.FromCenter(0, 0), Want: harness.Green},
			{Name: "right tip", At: harness.FromCenter(180, 0), Want: harness.Green},
			{Name: "bottom tip", At: harness.FromCenter(0, -180), Want: harness.Green},
			{Name: "square corner", At: harness.FromCenter(130, 130), Want: harness.Black},
			{Name: "window corner", At: harness.FromOrigin(2, 2), Want: harness.Black},
		},
	}))
}

func setZoomRotate(prog *shader.Program) error {
	m := mgl32.HomogRotate3DZ(mgl32.DegToRad(angle)).Mul4(mgl32.Scale3D(zoom, zoom, 1))
	return prog.SetMat4("zoomRotate", m)
}

func drawRedSquare() {
	gl.Color3ub(255, 0, 0)
	gl.Begin(gl.QUADS)
	gl.Vertex2f(-10, -10)
	gl.Vertex2f(10, -10)
	gl.Vertex2f(10, 10)
	gl.Vertex2f(-10, 10)
	gl.End()
}
