package shader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a set of shaders linked into one executable pipeline.
// The driver object is created lazily by Link or Use.
type Program struct {
	drv     Driver
	shaders []*Shader
	id      uint32
	linked  bool

	// attached maps each shader to the handle it was attached with.
	attached map[*Shader]uint32
	uniforms map[string]int32

	validate      bool
	deleteShaders bool
	logger        *slog.Logger
}

// NewProgram creates a program that will link the given shaders in order.
func NewProgram(drv Driver, shaders []*Shader, opts ...ProgramOption) *Program {
	p := &Program{
		drv:      drv,
		shaders:  append([]*Shader(nil), shaders...),
		attached: make(map[*Shader]uint32),
		uniforms: make(map[string]int32),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the driver handle, or 0 before the first Link.
func (p *Program) ID() uint32 { return p.id }

// Shaders returns the program's shaders in attach order.
func (p *Program) Shaders() []*Shader {
	return append([]*Shader(nil), p.shaders...)
}

// Linked reports whether the program linked since the last change.
func (p *Program) Linked() bool { return p.linked }

// Attach adds shaders to the program. A linked program is relinked by the
// next Use.
func (p *Program) Attach(shaders ...*Shader) {
	if len(shaders) == 0 {
		return
	}
	p.shaders = append(p.shaders, shaders...)
	p.linked = false
}

func (p *Program) log() *slog.Logger {
	l := p.logger
	if l == nil {
		l = Logger()
	}
	return l.With(slog.Uint64("program", uint64(p.id)))
}

func (p *Program) get(param Param) (int32, error) {
	v := p.drv.GetProgramiv(p.id, param)
	if err := checkError(p.drv, "glGetProgramiv", p.id, param); err != nil {
		return 0, err
	}
	return v, nil
}

// LinkStatus queries whether the last link succeeded.
func (p *Program) LinkStatus() (bool, error) {
	v, err := p.get(LinkStatus)
	if err != nil {
		return false, err
	}
	return v == glTrue, nil
}

// InfoLogLength returns the size of the program log including its NUL
// terminator, or 0 when there is no log.
func (p *Program) InfoLogLength() (int, error) {
	v, err := p.get(InfoLogLength)
	return int(v), err
}

// InfoLog returns the driver diagnostics for the last link or validation.
// It returns "" when the driver has no log.
func (p *Program) InfoLog() (string, error) {
	n, err := p.InfoLogLength()
	if err != nil || n == 0 {
		return "", err
	}
	log := p.drv.GetProgramInfoLog(p.id, int32(n))
	return strings.TrimRight(log, "\x00"), nil
}

// Link compiles any shader that is not compiled yet, attaches the shaders
// and links the program. It returns the program info log. A failed link
// returns a *LinkError; a failed compile is returned wrapped and can be
// matched with errors.As against *CompileError.
func (p *Program) Link() (string, error) {
	if p.id == 0 {
		p.id = p.drv.CreateProgram()
		p.log().Debug("program created")
	}
	p.linked = false
	clear(p.uniforms)

	for _, s := range p.shaders {
		if !s.Compiled() {
			if _, err := s.Compile(); err != nil {
				return "", fmt.Errorf("program %d: %w", p.id, err)
			}
		}
		old, ok := p.attached[s]
		if ok && old == s.ID() {
			continue
		}
		// A shader deleted since the last link comes back with a new
		// handle. The old object stays attached until it is detached.
		if ok && old != 0 {
			p.drv.DetachShader(p.id, old)
			if err := checkError(p.drv, "glDetachShader", p.id, 0); err != nil {
				return "", err
			}
			delete(p.attached, s)
		}
		p.drv.AttachShader(p.id, s.ID())
		if err := checkError(p.drv, "glAttachShader", p.id, 0); err != nil {
			return "", err
		}
		p.attached[s] = s.ID()
	}

	p.drv.LinkProgram(p.id)
	ok, err := p.LinkStatus()
	if err != nil {
		return "", err
	}
	log, err := p.InfoLog()
	if err != nil {
		return "", err
	}
	if !ok {
		return log, &LinkError{ID: p.id, Log: log}
	}

	if p.validate {
		vlog, err := p.validateProgram()
		if err != nil {
			return vlog, err
		}
		if vlog != "" {
			log = vlog
		}
	}

	if p.deleteShaders {
		p.releaseShaders()
	}

	p.linked = true
	if log != "" {
		p.log().Warn("program linked with diagnostics", slog.String("log", log))
	} else {
		p.log().Debug("program linked", slog.Int("shaders", len(p.shaders)))
	}
	return log, nil
}

func (p *Program) validateProgram() (string, error) {
	p.drv.ValidateProgram(p.id)
	v, err := p.get(ValidateStatus)
	if err != nil {
		return "", err
	}
	log, err := p.InfoLog()
	if err != nil {
		return "", err
	}
	if v != glTrue {
		return log, &ValidationError{ID: p.id, Log: log}
	}
	return log, nil
}

// releaseShaders detaches and deletes the shader objects. The linked
// program keeps working without them. Shaders shared with other programs
// are deleted too; those programs pick up the new handles on their next
// Link.
func (p *Program) releaseShaders() {
	for _, s := range p.shaders {
		if id, ok := p.attached[s]; ok && id != 0 {
			p.drv.DetachShader(p.id, id)
		}
		delete(p.attached, s)
		s.Delete()
	}
}

// Use links the program if needed and installs it in the current context.
func (p *Program) Use() error {
	if !p.linked {
		if _, err := p.Link(); err != nil {
			return err
		}
	}
	p.drv.UseProgram(p.id)
	return checkError(p.drv, "glUseProgram", p.id, 0)
}

// UniformLocation returns the location of an active uniform. Locations are
// cached until the next link.
func (p *Program) UniformLocation(name string) (int32, error) {
	if !p.linked {
		return -1, ErrNotLinked
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc, nil
	}
	loc := p.drv.GetUniformLocation(p.id, name)
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q", ErrUniformNotFound, name)
	}
	p.uniforms[name] = loc
	return loc, nil
}

// SetFloat uploads a float uniform. The program must be in use.
func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.UniformLocation(name)
	if err != nil {
		return err
	}
	p.drv.Uniform1f(loc, v)
	return checkError(p.drv, "glUniform1f", p.id, 0)
}

// SetVec4 uploads a vec4 uniform. The program must be in use.
func (p *Program) SetVec4(name string, v mgl32.Vec4) error {
	loc, err := p.UniformLocation(name)
	if err != nil {
		return err
	}
	p.drv.Uniform4f(loc, v[0], v[1], v[2], v[3])
	return checkError(p.drv, "glUniform4f", p.id, 0)
}

// SetMat4 uploads a column-major mat4 uniform. The program must be in use.
func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := p.UniformLocation(name)
	if err != nil {
		return err
	}
	v := [16]float32(m)
	p.drv.UniformMatrix4fv(loc, &v)
	return checkError(p.drv, "glUniformMatrix4fv", p.id, 0)
}

// Delete releases the program and all of its shaders, including shaders
// shared with other programs. A program that still uses a shared shader
// recompiles it on its next Link.
func (p *Program) Delete() {
	for _, s := range p.shaders {
		s.Delete()
	}
	if p.id != 0 {
		p.drv.DeleteProgram(p.id)
	}
	p.id = 0
	p.linked = false
	clear(p.attached)
	clear(p.uniforms)
}
