package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ResizeFunc is called with the framebuffer size when the window opens and
// whenever it changes.
type ResizeFunc func(width, height int)

type windowConfig struct {
	width, height int
	title         string
	fullscreen    bool
	hidden        bool
	resize        ResizeFunc
}

// WindowOption configures OpenWindow.
type WindowOption func(*windowConfig)

// WithSize sets the windowed size in screen coordinates.
func WithSize(width, height int) WindowOption {
	return func(c *windowConfig) { c.width, c.height = width, height }
}

// WithTitle sets the window title.
func WithTitle(title string) WindowOption {
	return func(c *windowConfig) { c.title = title }
}

// WithFullscreen opens the window fullscreen on the primary monitor at its
// current video mode.
func WithFullscreen() WindowOption {
	return func(c *windowConfig) { c.fullscreen = true }
}

// WithHidden creates an invisible window, for using the GL context only.
func WithHidden() WindowOption {
	return func(c *windowConfig) { c.hidden = true }
}

// WithResizeHandler registers fn for framebuffer size changes.
func WithResizeHandler(fn ResizeFunc) WindowOption {
	return func(c *windowConfig) { c.resize = fn }
}

// Window is a GLFW window with a current OpenGL 2.1 context.
// GLFW must run on the main thread: lock it with runtime.LockOSThread
// before calling OpenWindow.
type Window struct {
	window *glfw.Window
	resize ResizeFunc
}

// OpenWindow initializes GLFW, creates the window, makes its context
// current and loads the GL entry points.
func OpenWindow(opts ...WindowOption) (*Window, error) {
	cfg := windowConfig{width: 800, height: 600, title: "shader"}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	if cfg.hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	var monitor *glfw.Monitor
	if cfg.fullscreen && !cfg.hidden {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			cfg.width, cfg.height = mode.Width, mode.Height
		}
	}

	window, err := glfw.CreateWindow(cfg.width, cfg.height, cfg.title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	w := &Window{window: window, resize: cfg.resize}
	window.SetKeyCallback(w.keyCallback)
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	if w.resize != nil {
		w.resize(window.GetFramebufferSize())
	}
	return w, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.window.GetFramebufferSize()
}

// Run calls frame once per displayed frame until the window is closed or
// frames have been drawn. frames <= 0 means no limit. frame runs before the
// buffers are swapped, so it can read back what it drew.
func (w *Window) Run(frames int, frame func(n int) error) error {
	for n := 0; !w.window.ShouldClose(); n++ {
		if frames > 0 && n >= frames {
			break
		}
		glfw.PollEvents()
		if err := frame(n); err != nil {
			return err
		}
		w.window.SwapBuffers()
	}
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) keyCallback(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
}

func (w *Window) framebufferSizeCallback(win *glfw.Window, width, height int) {
	if w.resize != nil {
		w.resize(width, height)
	}
}
