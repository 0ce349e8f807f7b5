package shader

import (
	"log/slog"
	"strings"
)

// Shader is one compilation unit (a single pipeline stage) and its source.
// The driver object is created lazily by Compile.
type Shader struct {
	drv      Driver
	kind     Kind
	sources  []string
	id       uint32
	compiled bool
}

// NewShader creates a shader of the given stage. The sources are submitted
// to the driver in order and compiled as one unit.
func NewShader(drv Driver, kind Kind, sources ...string) *Shader {
	return &Shader{
		drv:     drv,
		kind:    kind,
		sources: append([]string(nil), sources...),
	}
}

// NewVertexShader creates a vertex stage shader.
func NewVertexShader(drv Driver, sources ...string) *Shader {
	return NewShader(drv, VertexShader, sources...)
}

// NewFragmentShader creates a fragment stage shader.
func NewFragmentShader(drv Driver, sources ...string) *Shader {
	return NewShader(drv, FragmentShader, sources...)
}

// ID returns the driver handle, or 0 before the first Compile.
func (s *Shader) ID() uint32 { return s.id }

// Kind returns the shader stage.
func (s *Shader) Kind() Kind { return s.kind }

// Sources returns a copy of the source strings.
func (s *Shader) Sources() []string {
	return append([]string(nil), s.sources...)
}

// Compiled reports whether the last Compile succeeded.
func (s *Shader) Compiled() bool { return s.compiled }

func (s *Shader) get(param Param) (int32, error) {
	v := s.drv.GetShaderiv(s.id, param)
	if err := checkError(s.drv, "glGetShaderiv", s.id, param); err != nil {
		return 0, err
	}
	return v, nil
}

// CompileStatus queries whether the driver compiled the shader.
func (s *Shader) CompileStatus() (bool, error) {
	v, err := s.get(CompileStatus)
	if err != nil {
		return false, err
	}
	return v == glTrue, nil
}

// InfoLogLength returns the size of the info log including its NUL
// terminator, or 0 when there is no log.
func (s *Shader) InfoLogLength() (int, error) {
	v, err := s.get(InfoLogLength)
	return int(v), err
}

// Type asks the driver for the stage of the shader object.
func (s *Shader) Type() (Kind, error) {
	v, err := s.get(ShaderType)
	return Kind(v), err
}

// InfoLog returns the driver diagnostics for the last compilation.
// It returns "" when the driver has no log.
func (s *Shader) InfoLog() (string, error) {
	n, err := s.InfoLogLength()
	if err != nil || n == 0 {
		return "", err
	}
	log := s.drv.GetShaderInfoLog(s.id, int32(n))
	return strings.TrimRight(log, "\x00"), nil
}

func (s *Shader) create() {
	s.id = s.drv.CreateShader(s.kind)
	Logger().Debug("shader created", slog.String("kind", s.kind.String()), slog.Uint64("id", uint64(s.id)))
}

// Compile creates the shader object if needed, submits the sources and
// compiles them. It returns the info log, which may hold warnings even when
// compilation succeeds. A failed compilation returns a *CompileError.
func (s *Shader) Compile() (string, error) {
	if s.id == 0 {
		s.create()
	}
	s.compiled = false
	s.drv.ShaderSource(s.id, s.sources)
	s.drv.CompileShader(s.id)

	ok, err := s.CompileStatus()
	if err != nil {
		return "", err
	}
	log, err := s.InfoLog()
	if err != nil {
		return "", err
	}
	if !ok {
		return log, &CompileError{Kind: s.kind, ID: s.id, Log: log}
	}

	s.compiled = true
	l := Logger().With(slog.String("kind", s.kind.String()), slog.Uint64("id", uint64(s.id)))
	if log != "" {
		l.Warn("shader compiled with diagnostics", slog.String("log", log))
	} else {
		l.Debug("shader compiled")
	}
	return log, nil
}

// Delete releases the driver object. The shader can be compiled again
// afterwards.
func (s *Shader) Delete() {
	if s.id == 0 {
		return
	}
	s.drv.DeleteShader(s.id)
	s.id = 0
	s.compiled = false
}
