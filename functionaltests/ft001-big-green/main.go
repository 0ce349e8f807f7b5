// Command ft001-big-green draws a small red square from (0,0) to (10,10).
// If the vertex and fragment shaders work, it is transformed into a large
// (100 pixel) green diamond standing on the bottom-left corner.
//
// Press Escape to close the window.
package main

import (
	_ "embed"
	"os"
	"runtime"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/go-theft-auto/shader/functionaltests/harness"
)

//go:embed allgreen.fsh
var fragmentSource string

//go:embed zoom10rotate45.vsh
var vertexSource string

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(harness.Main(harness.Test{
		Name:           "ft001-big-green",
		Description:    "A 10 pixel red square at the origin should appear as a 100 pixel green diamond.",
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		Resize:         harness.WindowOrtho,
		Draw:           draw,
		Probes: []harness.Probe{
			{Name: "diamond middle", At: harness.FromOrigin(20, 70), Want: harness.Green},
			{Name: "upper left", At: harness.FromOrigin(3, 130), Want: harness.Green},
			{Name: "right of diamond", At: harness.FromOrigin(100, 70), Want: harness.Black},
			{Name: "below diamond", At: harness.FromOrigin(60, 5), Want: harness.Black},
		},
	}))
}

func draw() {
	gl.Color3ub(255, 0, 0)
	gl.Begin(gl.TRIANGLES)

	gl.Vertex2f(0, 0)
	gl.Vertex2f(10, 0)
	gl.Vertex2f(0, 10)

	gl.Vertex2f(0, 10)
	gl.Vertex2f(10, 0)
	gl.Vertex2f(10, 10)

	gl.End()
}
