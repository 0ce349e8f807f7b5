// Package opengl provides the OpenGL 2.1 driver for the shader package,
// plus the GLFW window and framebuffer capture used by the smoke tests.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/go-theft-auto/shader"
)

var _ shader.Driver = (*Driver)(nil)

// Driver implements shader.Driver with go-gl. A GL context must be current
// on the calling thread and gl.Init must have succeeded (OpenWindow does
// both).
type Driver struct{}

// NewDriver returns a driver bound to whatever context is current.
func NewDriver() *Driver {
	return &Driver{}
}

// cstr returns s with a trailing NUL, as required by gl.Str and gl.Strs.
func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// CreateShader calls glCreateShader.
func (*Driver) CreateShader(kind shader.Kind) uint32 {
	return gl.CreateShader(uint32(kind))
}

// ShaderSource calls glShaderSource with NUL-terminated copies of sources.
func (*Driver) ShaderSource(id uint32, sources []string) {
	if len(sources) == 0 {
		gl.ShaderSource(id, 0, nil, nil)
		return
	}
	strs := make([]string, len(sources))
	for i, s := range sources {
		strs[i] = cstr(s)
	}
	csources, free := gl.Strs(strs...)
	defer free()
	gl.ShaderSource(id, int32(len(strs)), csources, nil)
}

// CompileShader calls glCompileShader.
func (*Driver) CompileShader(id uint32) {
	gl.CompileShader(id)
}

// GetShaderiv calls glGetShaderiv.
func (*Driver) GetShaderiv(id uint32, param shader.Param) int32 {
	var v int32
	gl.GetShaderiv(id, uint32(param), &v)
	return v
}

// GetShaderInfoLog calls glGetShaderInfoLog with a buffer of size bytes.
func (*Driver) GetShaderInfoLog(id uint32, size int32) string {
	if size <= 0 {
		return ""
	}
	log := make([]byte, size+1)
	gl.GetShaderInfoLog(id, size, nil, &log[0])
	return gl.GoStr(&log[0])
}

// DeleteShader calls glDeleteShader.
func (*Driver) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

// CreateProgram calls glCreateProgram.
func (*Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

// AttachShader calls glAttachShader.
func (*Driver) AttachShader(program, sh uint32) {
	gl.AttachShader(program, sh)
}

// DetachShader calls glDetachShader.
func (*Driver) DetachShader(program, sh uint32) {
	gl.DetachShader(program, sh)
}

// LinkProgram calls glLinkProgram.
func (*Driver) LinkProgram(id uint32) {
	gl.LinkProgram(id)
}

// ValidateProgram calls glValidateProgram.
func (*Driver) ValidateProgram(id uint32) {
	gl.ValidateProgram(id)
}

// GetProgramiv calls glGetProgramiv.
func (*Driver) GetProgramiv(id uint32, param shader.Param) int32 {
	var v int32
	gl.GetProgramiv(id, uint32(param), &v)
	return v
}

// GetProgramInfoLog calls glGetProgramInfoLog with a buffer of size bytes.
func (*Driver) GetProgramInfoLog(id uint32, size int32) string {
	if size <= 0 {
		return ""
	}
	log := make([]byte, size+1)
	gl.GetProgramInfoLog(id, size, nil, &log[0])
	return gl.GoStr(&log[0])
}

// UseProgram calls glUseProgram.
func (*Driver) UseProgram(id uint32) {
	gl.UseProgram(id)
}

// DeleteProgram calls glDeleteProgram.
func (*Driver) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

// GetUniformLocation calls glGetUniformLocation.
func (*Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(cstr(name)))
}

// Uniform1f calls glUniform1f.
func (*Driver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

// Uniform4f calls glUniform4f.
func (*Driver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

// UniformMatrix4fv uploads one column-major matrix with glUniformMatrix4fv.
func (*Driver) UniformMatrix4fv(location int32, m *[16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// GetError calls glGetError.
func (*Driver) GetError() uint32 {
	return gl.GetError()
}

// Info describes the active GL implementation.
type Info struct {
	Vendor      string
	Renderer    string
	Version     string
	GLSLVersion string
}

// QueryInfo reads the implementation strings of the current context.
func QueryInfo() Info {
	return Info{
		Vendor:      gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}
