package shader_test

import (
	"fmt"
	"strings"

	"github.com/go-theft-auto/shader"
)

// fakeDriver records driver calls and simulates compile and link results.
// A shader fails to compile when any of its sources contains "error".
type fakeDriver struct {
	nextID uint32
	calls  []string

	kinds     map[uint32]shader.Kind
	sources   map[uint32][]string
	compiled  map[uint32]bool
	shaderLog map[uint32]string

	attached   map[uint32][]uint32
	linked     map[uint32]bool
	linkFail   bool
	linkLog    string
	validFail  bool
	programLog map[uint32]string
	used       uint32

	uniforms map[string]int32
	values   map[int32][]float32

	deletedShaders  []uint32
	deletedPrograms []uint32

	// failCall makes GetError report failCode after the named call.
	failCall string
	failCode uint32
	pending  uint32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		nextID:     100,
		kinds:      make(map[uint32]shader.Kind),
		sources:    make(map[uint32][]string),
		compiled:   make(map[uint32]bool),
		shaderLog:  make(map[uint32]string),
		attached:   make(map[uint32][]uint32),
		linked:     make(map[uint32]bool),
		programLog: make(map[uint32]string),
		uniforms:   make(map[string]int32),
		values:     make(map[int32][]float32),
	}
}

func (d *fakeDriver) record(call string, args ...any) {
	s := call
	if len(args) > 0 {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		s += "(" + strings.Join(parts, ", ") + ")"
	} else {
		s += "()"
	}
	d.calls = append(d.calls, s)
	if d.failCall == call {
		d.pending = d.failCode
	}
}

// callNames returns the recorded calls without arguments.
func (d *fakeDriver) callNames() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c[:strings.IndexByte(c, '(')]
	}
	return names
}

func (d *fakeDriver) count(call string) int {
	n := 0
	for _, name := range d.callNames() {
		if name == call {
			n++
		}
	}
	return n
}

func (d *fakeDriver) CreateShader(kind shader.Kind) uint32 {
	d.record("CreateShader", kind)
	d.nextID++
	d.kinds[d.nextID] = kind
	return d.nextID
}

func (d *fakeDriver) ShaderSource(id uint32, sources []string) {
	d.record("ShaderSource", id, len(sources))
	d.sources[id] = append([]string(nil), sources...)
}

func (d *fakeDriver) CompileShader(id uint32) {
	d.record("CompileShader", id)
	for _, src := range d.sources[id] {
		if strings.Contains(src, "error") {
			d.compiled[id] = false
			d.shaderLog[id] = "0:1(1): error: syntax error, unexpected IDENTIFIER"
			return
		}
		if strings.Contains(src, "warning") {
			d.shaderLog[id] = "0:1(1): warning: unused variable"
		}
	}
	d.compiled[id] = true
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func logLen(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s) + 1)
}

func (d *fakeDriver) GetShaderiv(id uint32, param shader.Param) int32 {
	d.record("GetShaderiv", id, uint32(param))
	switch param {
	case shader.CompileStatus:
		return boolInt(d.compiled[id])
	case shader.InfoLogLength:
		return logLen(d.shaderLog[id])
	case shader.ShaderType:
		return int32(d.kinds[id])
	}
	return 0
}

func truncate(log string, size int32) string {
	if int(size)-1 < len(log) {
		log = log[:size-1]
	}
	return log + "\x00"
}

func (d *fakeDriver) GetShaderInfoLog(id uint32, size int32) string {
	d.record("GetShaderInfoLog", id, size)
	return truncate(d.shaderLog[id], size)
}

func (d *fakeDriver) DeleteShader(id uint32) {
	d.record("DeleteShader", id)
	d.deletedShaders = append(d.deletedShaders, id)
}

func (d *fakeDriver) CreateProgram() uint32 {
	d.record("CreateProgram")
	d.nextID++
	return d.nextID
}

func (d *fakeDriver) AttachShader(program, sh uint32) {
	d.record("AttachShader", program, sh)
	d.attached[program] = append(d.attached[program], sh)
}

func (d *fakeDriver) DetachShader(program, sh uint32) {
	d.record("DetachShader", program, sh)
	ids := d.attached[program]
	for i, id := range ids {
		if id == sh {
			d.attached[program] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (d *fakeDriver) LinkProgram(id uint32) {
	d.record("LinkProgram", id)
	d.linked[id] = !d.linkFail
	d.programLog[id] = d.linkLog
}

func (d *fakeDriver) ValidateProgram(id uint32) {
	d.record("ValidateProgram", id)
	if d.validFail {
		d.programLog[id] = "validation: sampler type mismatch"
	}
}

func (d *fakeDriver) GetProgramiv(id uint32, param shader.Param) int32 {
	d.record("GetProgramiv", id, uint32(param))
	switch param {
	case shader.LinkStatus:
		return boolInt(d.linked[id])
	case shader.ValidateStatus:
		return boolInt(!d.validFail)
	case shader.InfoLogLength:
		return logLen(d.programLog[id])
	case shader.AttachedShaders:
		return int32(len(d.attached[id]))
	}
	return 0
}

func (d *fakeDriver) GetProgramInfoLog(id uint32, size int32) string {
	d.record("GetProgramInfoLog", id, size)
	return truncate(d.programLog[id], size)
}

func (d *fakeDriver) UseProgram(id uint32) {
	d.record("UseProgram", id)
	d.used = id
}

func (d *fakeDriver) DeleteProgram(id uint32) {
	d.record("DeleteProgram", id)
	d.deletedPrograms = append(d.deletedPrograms, id)
}

func (d *fakeDriver) GetUniformLocation(program uint32, name string) int32 {
	d.record("GetUniformLocation", program, name)
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDriver) Uniform1f(location int32, v float32) {
	d.record("Uniform1f", location)
	d.values[location] = []float32{v}
}

func (d *fakeDriver) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	d.record("Uniform4f", location)
	d.values[location] = []float32{v0, v1, v2, v3}
}

func (d *fakeDriver) UniformMatrix4fv(location int32, m *[16]float32) {
	d.record("UniformMatrix4fv", location)
	d.values[location] = append([]float32(nil), m[:]...)
}

func (d *fakeDriver) GetError() uint32 {
	code := d.pending
	d.pending = shader.NoError
	return code
}
