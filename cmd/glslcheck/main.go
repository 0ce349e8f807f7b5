// Command glslcheck compiles GLSL shader files with the local OpenGL driver
// and prints the driver diagnostics.
//
// Usage:
//
//	glslcheck [-stage vertex|fragment] [-link] [-v] file...
//
// The stage of each file follows its extension (.vert, .vsh, .frag, .fsh)
// unless -stage is given. Use "-" to read a shader from a pipe on stdin.
// With -link all files are also linked into one program. The exit status
// is 1 if any shader fails to compile or the program fails to link.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/term"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

const pipeName = "-"

var errFailed = errors.New("glslcheck: failed")

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return
	case !errors.Is(err, errFailed):
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

type input struct {
	name   string
	kind   shader.Kind
	source string
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("glslcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	stage := fs.String("stage", "", "Shader stage for every input: vertex or fragment")
	link := fs.Bool("link", false, "Link all inputs into one program")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no input files")
	}

	var forced shader.Kind
	if *stage != "" {
		k, err := parseStage(*stage)
		if err != nil {
			return err
		}
		forced = k
	}

	stdinIsTerminal := func() bool { return term.IsTerminal(int(stdin.Fd())) }
	inputs, err := readInputs(fs.Args(), forced, stdin, stdinIsTerminal)
	if err != nil {
		return err
	}

	if *verbose {
		shader.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	win, err := opengl.OpenWindow(opengl.WithHidden(), opengl.WithTitle("glslcheck"))
	if err != nil {
		return err
	}
	defer win.Close()

	info := opengl.QueryInfo()
	fmt.Fprintf(stdout, "%s, OpenGL %s, GLSL %s\n", info.Renderer, info.Version, info.GLSLVersion)

	return check(opengl.NewDriver(), inputs, *link, stdout)
}

// check compiles every input, then links them when link is set.
func check(drv shader.Driver, inputs []input, link bool, w io.Writer) error {
	failed := false
	shaders := make([]*shader.Shader, 0, len(inputs))
	for _, in := range inputs {
		sh := shader.NewShader(drv, in.kind, in.source)
		shaders = append(shaders, sh)

		log, err := sh.Compile()
		if err != nil {
			failed = true
			fmt.Fprintf(w, "%s (%s): FAILED\n", in.name, in.kind)
		} else {
			fmt.Fprintf(w, "%s (%s): ok\n", in.name, in.kind)
		}
		printLog(w, log)

		var cerr *shader.CompileError
		if err != nil && !errors.As(err, &cerr) {
			fmt.Fprintf(w, "  %v\n", err)
		}
	}

	prog := shader.NewProgram(drv, shaders)
	defer prog.Delete()

	if failed {
		return errFailed
	}
	if !link {
		return nil
	}

	log, err := prog.Link()
	if err != nil {
		fmt.Fprintln(w, "link: FAILED")
		printLog(w, log)
		var lerr *shader.LinkError
		if !errors.As(err, &lerr) {
			fmt.Fprintf(w, "  %v\n", err)
		}
		return errFailed
	}
	fmt.Fprintln(w, "link: ok")
	printLog(w, log)
	return nil
}

func printLog(w io.Writer, log string) {
	log = strings.TrimRight(log, "\n")
	if log == "" {
		return
	}
	for _, line := range strings.Split(log, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

func readInputs(names []string, forced shader.Kind, stdin io.Reader, stdinIsTerminal func() bool) ([]input, error) {
	inputs := make([]input, 0, len(names))
	usedStdin := false
	for _, name := range names {
		kind := forced
		if kind == 0 {
			k, err := stageFor(name)
			if err != nil {
				return nil, err
			}
			kind = k
		}

		var src []byte
		var err error
		if name == pipeName {
			if usedStdin {
				return nil, errors.New("stdin can only be read once")
			}
			usedStdin = true
			if stdinIsTerminal() {
				return nil, errors.New("`-` should be used with a pipe for stdin")
			}
			src, err = io.ReadAll(stdin)
		} else {
			src, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read %s: %w", name, err)
		}
		inputs = append(inputs, input{name: name, kind: kind, source: string(src)})
	}
	return inputs, nil
}

func parseStage(s string) (shader.Kind, error) {
	switch strings.ToLower(s) {
	case "vertex", "vert", "vs":
		return shader.VertexShader, nil
	case "fragment", "frag", "fs":
		return shader.FragmentShader, nil
	}
	return 0, fmt.Errorf("unknown shader stage %q", s)
}

func stageFor(name string) (shader.Kind, error) {
	if name == pipeName {
		return 0, errors.New("-stage is required when reading from stdin")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vert", ".vsh", ".vs":
		return shader.VertexShader, nil
	case ".frag", ".fsh", ".fs":
		return shader.FragmentShader, nil
	}
	return 0, fmt.Errorf("%s: cannot tell the shader stage from the extension, use -stage", name)
}
