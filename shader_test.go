package shader_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-theft-auto/shader"
)

func TestNewShader(t *testing.T) {
	drv := newFakeDriver()
	tests := []struct {
		name string
		sh   *shader.Shader
		kind shader.Kind
	}{
		{"vertex", shader.NewVertexShader(drv, "src"), shader.VertexShader},
		{"fragment", shader.NewFragmentShader(drv, "src"), shader.FragmentShader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sh.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.sh.Kind(), tt.kind)
			}
			if tt.sh.ID() != 0 {
				t.Errorf("ID() = %d, want 0 before compile", tt.sh.ID())
			}
			if got := tt.sh.Sources(); !reflect.DeepEqual(got, []string{"src"}) {
				t.Errorf("Sources() = %q, want [src]", got)
			}
			if tt.sh.Compiled() {
				t.Error("new shader should not be compiled")
			}
		})
	}

	if len(drv.calls) != 0 {
		t.Errorf("constructors should not call the driver, got %v", drv.calls)
	}
}

func TestSourcesIsCopy(t *testing.T) {
	src := []string{"a", "b"}
	sh := shader.NewVertexShader(newFakeDriver(), src...)
	src[0] = "changed"

	got := sh.Sources()
	got[1] = "changed"

	if want := []string{"a", "b"}; !reflect.DeepEqual(sh.Sources(), want) {
		t.Errorf("Sources() = %q, want %q", sh.Sources(), want)
	}
}

func TestKindString(t *testing.T) {
	if shader.VertexShader.String() != "vertex" {
		t.Errorf("VertexShader.String() = %q", shader.VertexShader.String())
	}
	if shader.FragmentShader.String() != "fragment" {
		t.Errorf("FragmentShader.String() = %q", shader.FragmentShader.String())
	}
	if shader.Kind(1).String() != "unknown" {
		t.Errorf("Kind(1).String() = %q", shader.Kind(1).String())
	}
}

func TestCompileCallSequence(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewVertexShader(drv, "one", "two", "three")

	log, err := sh.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if log != "" {
		t.Errorf("Compile() log = %q, want empty", log)
	}
	if sh.ID() == 0 {
		t.Fatal("Compile() should create a shader object")
	}
	if !sh.Compiled() {
		t.Error("Compiled() = false after successful compile")
	}

	want := []string{"CreateShader", "ShaderSource", "CompileShader", "GetShaderiv", "GetShaderiv"}
	if got := drv.callNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if got := drv.kinds[sh.ID()]; got != shader.VertexShader {
		t.Errorf("created kind = %v, want vertex", got)
	}
	if got := drv.sources[sh.ID()]; !reflect.DeepEqual(got, []string{"one", "two", "three"}) {
		t.Errorf("submitted sources = %q", got)
	}
}

func TestCompileReusesShaderObject(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewFragmentShader(drv, "src")

	if _, err := sh.Compile(); err != nil {
		t.Fatal(err)
	}
	id := sh.ID()
	if _, err := sh.Compile(); err != nil {
		t.Fatal(err)
	}

	if sh.ID() != id {
		t.Errorf("ID changed on recompile: %d -> %d", id, sh.ID())
	}
	if n := drv.count("CreateShader"); n != 1 {
		t.Errorf("CreateShader called %d times, want 1", n)
	}
}

func TestCompileReturnsWarnings(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewVertexShader(drv, "warning here")

	log, err := sh.Compile()
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !strings.Contains(log, "unused variable") {
		t.Errorf("Compile() log = %q, want driver warning", log)
	}
}

func TestCompileFailure(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewFragmentShader(drv, "void main() {}", "error")

	_, err := sh.Compile()
	if err == nil {
		t.Fatal("Compile() should fail")
	}

	var cerr *shader.CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *CompileError", err)
	}
	if cerr.Kind != shader.FragmentShader || cerr.ID != sh.ID() {
		t.Errorf("CompileError = %+v", cerr)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error %q should contain the info log", err.Error())
	}
	if sh.Compiled() {
		t.Error("Compiled() = true after failed compile")
	}
}

func TestCompileStatus(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"ok", true},
		{"error", false},
	}

	for _, tt := range tests {
		drv := newFakeDriver()
		sh := shader.NewVertexShader(drv, tt.src)
		sh.Compile()

		got, err := sh.CompileStatus()
		if err != nil {
			t.Fatalf("CompileStatus() error: %v", err)
		}
		if got != tt.want {
			t.Errorf("CompileStatus() for %q = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestType(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewFragmentShader(drv, "src")
	sh.Compile()

	kind, err := sh.Type()
	if err != nil {
		t.Fatal(err)
	}
	if kind != shader.FragmentShader {
		t.Errorf("Type() = %v, want fragment", kind)
	}
}

func TestInfoLog(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewVertexShader(drv, "error")
	sh.Compile()

	n, err := sh.InfoLogLength()
	if err != nil {
		t.Fatal(err)
	}
	want := drv.shaderLog[sh.ID()]
	if n != len(want)+1 {
		t.Errorf("InfoLogLength() = %d, want %d", n, len(want)+1)
	}

	log, err := sh.InfoLog()
	if err != nil {
		t.Fatal(err)
	}
	if log != want {
		t.Errorf("InfoLog() = %q, want %q", log, want)
	}
}

func TestInfoLogEmpty(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewVertexShader(drv, "ok")
	sh.Compile()
	drv.calls = nil

	log, err := sh.InfoLog()
	if err != nil {
		t.Fatal(err)
	}
	if log != "" {
		t.Errorf("InfoLog() = %q, want empty", log)
	}
	if drv.count("GetShaderInfoLog") != 0 {
		t.Error("GetShaderInfoLog should not be called for a zero length log")
	}
}

func TestQueryErrors(t *testing.T) {
	codes := []uint32{shader.InvalidEnum, shader.InvalidOperation, shader.InvalidValue}

	for _, code := range codes {
		drv := newFakeDriver()
		drv.failCall = "GetShaderiv"
		drv.failCode = code
		sh := shader.NewVertexShader(drv, "src")

		_, err := sh.CompileStatus()
		var qerr *shader.QueryError
		if !errors.As(err, &qerr) {
			t.Fatalf("code 0x%X: error = %v, want *QueryError", code, err)
		}
		if qerr.Code != code || qerr.Param != shader.CompileStatus {
			t.Errorf("QueryError = %+v", qerr)
		}
		if !strings.Contains(err.Error(), "glGetShaderiv") {
			t.Errorf("error %q should name the call", err.Error())
		}
	}
}

func TestQueryErrorDescriptions(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{shader.InvalidValue, "GL_INVALID_VALUE (1st arg)"},
		{shader.InvalidEnum, "GL_INVALID_ENUM (2nd arg)"},
		{shader.InvalidOperation, "GL_INVALID_OPERATION"},
		{0x0505, "GL error 0x0505"},
	}

	for _, tt := range tests {
		err := &shader.QueryError{Call: "glGetShaderiv", ID: 3, Param: shader.InfoLogLength, Code: tt.code}
		if !strings.HasPrefix(err.Error(), tt.want) {
			t.Errorf("Error() = %q, want prefix %q", err.Error(), tt.want)
		}
	}
}

func TestCompileFailsOnQueryError(t *testing.T) {
	drv := newFakeDriver()
	drv.failCall = "CompileShader"
	drv.failCode = shader.InvalidOperation
	sh := shader.NewVertexShader(drv, "src")

	_, err := sh.Compile()
	var qerr *shader.QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("error = %v, want *QueryError", err)
	}
	if sh.Compiled() {
		t.Error("Compiled() = true after driver error")
	}
}

func TestShaderDelete(t *testing.T) {
	drv := newFakeDriver()
	sh := shader.NewVertexShader(drv, "src")

	sh.Delete()
	if len(drv.deletedShaders) != 0 {
		t.Error("Delete() before compile should not call the driver")
	}

	sh.Compile()
	id := sh.ID()
	sh.Delete()

	if !reflect.DeepEqual(drv.deletedShaders, []uint32{id}) {
		t.Errorf("deleted = %v, want [%d]", drv.deletedShaders, id)
	}
	if sh.ID() != 0 || sh.Compiled() {
		t.Error("Delete() should reset the shader")
	}
}
