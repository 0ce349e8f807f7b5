package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLinked is returned by uniform operations on a program that has
	// not been linked yet.
	ErrNotLinked = errors.New("shader: program not linked")

	// ErrUniformNotFound is returned when the linked program has no active
	// uniform with the requested name.
	ErrUniformNotFound = errors.New("shader: uniform not found")
)

// errorDescriptions explains the driver errors a state query can raise.
var errorDescriptions = map[uint32]string{
	InvalidValue:     "GL_INVALID_VALUE (1st arg)",
	InvalidOperation: "GL_INVALID_OPERATION (bad object id or immediate mode drawing in progress)",
	InvalidEnum:      "GL_INVALID_ENUM (2nd arg)",
}

// CompileError reports a failed shader compilation.
type CompileError struct {
	Kind Kind
	ID   uint32
	Log  string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader %d: compilation failed", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s shader %d: compilation failed: %s", e.Kind, e.ID, e.Log)
}

// LinkError reports a failed program link.
type LinkError struct {
	ID  uint32
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("program %d: link failed", e.ID)
	}
	return fmt.Sprintf("program %d: link failed: %s", e.ID, e.Log)
}

// ValidationError reports a program that linked but failed validation
// against the current pipeline state.
type ValidationError struct {
	ID  uint32
	Log string
}

func (e *ValidationError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("program %d: validation failed", e.ID)
	}
	return fmt.Sprintf("program %d: validation failed: %s", e.ID, e.Log)
}

// QueryError reports a driver error raised by a state query or call.
type QueryError struct {
	Call  string
	ID    uint32
	Param Param
	Code  uint32
}

func (e *QueryError) Error() string {
	desc, ok := errorDescriptions[e.Code]
	if !ok {
		desc = fmt.Sprintf("GL error 0x%04X", e.Code)
	}
	if e.Param == 0 {
		return fmt.Sprintf("%s from %s(%d)", desc, e.Call, e.ID)
	}
	return fmt.Sprintf("%s from %s(%d, 0x%04X, *value)", desc, e.Call, e.ID, uint32(e.Param))
}

// checkError converts a pending driver error into a QueryError.
func checkError(drv Driver, call string, id uint32, param Param) error {
	if code := drv.GetError(); code != NoError {
		return &QueryError{Call: call, ID: id, Param: param, Code: code}
	}
	return nil
}
