package shader

import "log/slog"

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithValidation validates the program right after a successful link.
// Validation checks the program against the current GL state, so link
// where that state is already set up.
func WithValidation() ProgramOption {
	return func(p *Program) { p.validate = true }
}

// WithDeleteShaders detaches and deletes the shader objects once the
// program has linked. The shaders are recompiled if the program relinks.
func WithDeleteShaders() ProgramOption {
	return func(p *Program) { p.deleteShaders = true }
}

// WithLogger sets the logger for this program instead of the package logger.
func WithLogger(l *slog.Logger) ProgramOption {
	return func(p *Program) { p.logger = l }
}
