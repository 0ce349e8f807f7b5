/*
Package shader compiles and links GLSL shader programs through a small
driver interface.

# Overview

A Shader owns one compilation unit (a vertex or fragment stage) and its
source strings. A Program owns a list of shaders and the program object
they are linked into. Neither type does any parsing: the graphics driver
compiles, links and reports diagnostics, and this package sequences the
calls and turns failures into Go errors.

The lifecycle is:

	create shader -> source -> compile -> check status
	create program -> attach -> link -> check status -> use

Objects are created lazily, so constructing a Shader or Program never
touches the driver.

# Quick Start

	drv := opengl.NewDriver() // after a GL context is current

	vs := shader.NewVertexShader(drv, vertexSource)
	fs := shader.NewFragmentShader(drv, fragmentSource)
	prog := shader.NewProgram(drv, []*shader.Shader{vs, fs}, shader.WithDeleteShaders())
	defer prog.Delete()

	if err := prog.Use(); err != nil {
	    var cerr *shader.CompileError
	    if errors.As(err, &cerr) {
	        fmt.Println(cerr.Kind, "shader failed:", cerr.Log)
	    }
	    return err
	}
	prog.SetMat4("transform", mgl32.Ident4())

# Errors

Compile failures are reported as *CompileError, link failures as
*LinkError and failed validation (WithValidation) as *ValidationError. Each
carries the driver info log. Driver errors raised by a state query, for
example an invalid object id, become *QueryError.

# Threading

OpenGL contexts are bound to one OS thread. All methods must be called from
the thread that owns the current context, usually the main thread locked
with runtime.LockOSThread.

# Logging

The package is silent by default. SetLogger installs a *slog.Logger that
receives debug events for object creation, compilation and linking, and
warnings for non-empty info logs on success.
*/
package shader
