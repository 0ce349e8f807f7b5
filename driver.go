package shader

// Kind is a shader stage. Values match the OpenGL enums so a backend can
// pass them to the driver unchanged.
type Kind uint32

// Shader stages.
const (
	FragmentShader Kind = 0x8B30
	VertexShader   Kind = 0x8B31
)

// String returns the stage name.
func (k Kind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Param names a shader or program state query.
type Param uint32

// Query parameters accepted by GetShaderiv and GetProgramiv.
const (
	ShaderType      Param = 0x8B4F
	DeleteStatus    Param = 0x8B80
	CompileStatus   Param = 0x8B81
	LinkStatus      Param = 0x8B82
	ValidateStatus  Param = 0x8B83
	InfoLogLength   Param = 0x8B84
	AttachedShaders Param = 0x8B85
)

// Driver error codes reported by GetError.
const (
	NoError          uint32 = 0
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
)

// Boolean values returned by status queries.
const (
	glFalse int32 = 0
	glTrue  int32 = 1
)

// Driver is the subset of the graphics API used by Shader and Program.
// Calls must be made on the goroutine that owns the current GL context.
type Driver interface {
	CreateShader(kind Kind) uint32
	// ShaderSource replaces the source of a shader with the given strings,
	// concatenated in order.
	ShaderSource(id uint32, sources []string)
	CompileShader(id uint32)
	GetShaderiv(id uint32, param Param) int32
	// GetShaderInfoLog returns at most size-1 bytes of the shader log.
	GetShaderInfoLog(id uint32, size int32) string
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(id uint32)
	ValidateProgram(id uint32)
	GetProgramiv(id uint32, param Param) int32
	GetProgramInfoLog(id uint32, size int32) string
	UseProgram(id uint32)
	DeleteProgram(id uint32)

	// GetUniformLocation returns -1 when the program has no active uniform
	// with that name.
	GetUniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, m *[16]float32)

	// GetError returns and clears the driver error flag.
	GetError() uint32
}
