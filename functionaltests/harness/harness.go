// Package harness runs the functional shader tests: it opens a window,
// installs a shader program, draws a scene every frame and optionally
// checks sampled pixels of the result.
//
// Callers must lock the main goroutine to the main thread in an init
// function, as GLFW requires.
package harness

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

// Exit codes returned by Main.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitShaderError = 2
)

// autoFrames is how many frames are drawn when -check or -capture is given
// without -frames.
const autoFrames = 3

// Test describes one functional test.
type Test struct {
	Name        string
	Description string

	// VertexSource and FragmentSource are used unless -vsh or -fsh name a
	// file to read instead.
	VertexSource   string
	FragmentSource string

	// Resize sets the viewport and projection for a framebuffer size.
	Resize opengl.ResizeFunc
	// Setup runs once after the program is installed, for uniforms.
	Setup func(prog *shader.Program) error
	// Draw issues the draw calls for one frame.
	Draw func()

	Probes []Probe
}

// Config holds the command-line settings of a test run.
type Config struct {
	Fullscreen   bool
	Width        int
	Height       int
	Frames       int
	CapturePath  string
	Check        bool
	Verbose      bool
	VertexPath   string
	FragmentPath string
}

// ParseFlags parses the test command line.
func ParseFlags(t Test, args []string, output io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet(t.Name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage of %s:\n", t.Name)
		if t.Description != "" {
			fmt.Fprintf(output, "\n%s\n\n", t.Description)
		}
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Fullscreen, "fullscreen", false, "Open fullscreen on the primary monitor")
	fs.IntVar(&cfg.Width, "width", 800, "Window width")
	fs.IntVar(&cfg.Height, "height", 600, "Window height")
	fs.IntVar(&cfg.Frames, "frames", 0, "Number of frames to draw (0 runs until the window is closed)")
	fs.StringVar(&cfg.CapturePath, "capture", "", "Save the last frame to this image file")
	fs.BoolVar(&cfg.Check, "check", false, "Compare probe pixels of the last frame with the expected colors")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&cfg.VertexPath, "vsh", "", "Read the vertex shader from this file")
	fs.StringVar(&cfg.FragmentPath, "fsh", "", "Read the fragment shader from this file")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Frames < 0 {
		return cfg, fmt.Errorf("invalid frame count %d", cfg.Frames)
	}
	if (cfg.Check || cfg.CapturePath != "") && cfg.Frames == 0 {
		cfg.Frames = autoFrames
	}
	return cfg, nil
}

// Main parses os.Args, runs the test and returns the process exit code.
func Main(t Test) int {
	cfg, err := ParseFlags(t, os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Verbose {
		shader.SetLogger(logger)
	}

	return exitCode(Run(t, cfg, logger), os.Stderr)
}

// exitCode prints err and maps it to an exit code. Shader failures are
// printed as "Type: message".
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}
	if name, serr := shaderError(err); serr != nil {
		fmt.Fprintf(w, "%s: %s\n", name, serr)
		return ExitShaderError
	}
	fmt.Fprintln(w, err)
	return ExitFailure
}

func shaderError(err error) (string, error) {
	var cerr *shader.CompileError
	if errors.As(err, &cerr) {
		return "CompileError", cerr
	}
	var lerr *shader.LinkError
	if errors.As(err, &lerr) {
		return "LinkError", lerr
	}
	var verr *shader.ValidationError
	if errors.As(err, &verr) {
		return "ValidationError", verr
	}
	return "", nil
}

// Run opens the window, installs the shaders and draws until the window
// closes or cfg.Frames frames were drawn.
func Run(t Test, cfg Config, logger *slog.Logger) error {
	vsrc, err := loadSource(t.VertexSource, cfg.VertexPath)
	if err != nil {
		return err
	}
	fsrc, err := loadSource(t.FragmentSource, cfg.FragmentPath)
	if err != nil {
		return err
	}

	opts := []opengl.WindowOption{
		opengl.WithTitle(t.Name),
		opengl.WithSize(cfg.Width, cfg.Height),
	}
	if cfg.Fullscreen {
		opts = append(opts, opengl.WithFullscreen())
	}
	if t.Resize != nil {
		opts = append(opts, opengl.WithResizeHandler(t.Resize))
	}
	win, err := opengl.OpenWindow(opts...)
	if err != nil {
		return err
	}
	defer win.Close()

	info := opengl.QueryInfo()
	logger.Debug("context ready",
		slog.String("renderer", info.Renderer),
		slog.String("version", info.Version),
		slog.String("glsl", info.GLSLVersion))

	prog, err := install(opengl.NewDriver(), vsrc, fsrc)
	if err != nil {
		return err
	}
	defer prog.Delete()

	if t.Setup != nil {
		if err := t.Setup(prog); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	wantImage := cfg.Check || cfg.CapturePath != ""
	var last frameImage
	err = win.Run(cfg.Frames, func(n int) error {
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if t.Draw != nil {
			t.Draw()
		}
		if wantImage && n == cfg.Frames-1 {
			last = frameImage{img: win.Capture(), ok: true}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !wantImage {
		return nil
	}
	if !last.ok {
		return errors.New("window closed before the last frame was drawn")
	}
	if cfg.CapturePath != "" {
		if err := opengl.SaveImage(cfg.CapturePath, last.img); err != nil {
			return fmt.Errorf("save capture: %w", err)
		}
		logger.Info("frame captured", slog.String("path", cfg.CapturePath))
	}
	if cfg.Check {
		if err := CheckProbes(last.img, t.Probes); err != nil {
			return err
		}
		logger.Info("all probes passed", slog.Int("probes", len(t.Probes)))
	}
	return nil
}

// install compiles and links the fragment and vertex shaders and makes the
// program current.
func install(drv shader.Driver, vertexSource, fragmentSource string) (*shader.Program, error) {
	prog := shader.NewProgram(drv, []*shader.Shader{
		shader.NewFragmentShader(drv, fragmentSource),
		shader.NewVertexShader(drv, vertexSource),
	}, shader.WithDeleteShaders())

	if err := prog.Use(); err != nil {
		prog.Delete()
		return nil, err
	}
	return prog, nil
}

func loadSource(embedded, path string) (string, error) {
	if path == "" {
		return embedded, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader source: %w", err)
	}
	return string(b), nil
}
