package git

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/LegacyCodeHQ/revstamp/internal/devlog"
)

// DefaultTool is the executable looked up on PATH when no other tool is configured.
const DefaultTool = "git"

// Invocation describes a single execution of the tool.
type Invocation struct {
	Tool string
	Dir  string
	Args []string
}

// String formats the invocation as a command line, e.g. "git rev-parse --short HEAD".
func (i Invocation) String() string {
	var b strings.Builder
	b.WriteString(i.Tool)
	for _, arg := range i.Args {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	return b.String()
}

// Runner executes git in a working directory with stdin attached to the null device.
type Runner struct {
	tool string
}

// Option configures a Runner.
type Option func(*Runner)

// WithTool sets the executable name or path used instead of DefaultTool.
func WithTool(tool string) Option {
	return func(r *Runner) {
		if tool != "" {
			r.tool = tool
		}
	}
}

// NewRunner creates a Runner for DefaultTool unless overridden.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{tool: DefaultTool}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tool returns the configured executable.
func (r *Runner) Tool() string {
	return r.tool
}

func (r *Runner) invocation(dir string, args []string) Invocation {
	return Invocation{Tool: r.tool, Dir: dir, Args: args}
}

func (r *Runner) command(inv Invocation) *exec.Cmd {
	cmd := exec.Command(inv.Tool, inv.Args...)
	cmd.Dir = inv.Dir
	// Stdin stays nil so git reads from the null device. Optional locks are disabled
	// so status queries never rewrite the index of the repository being inspected.
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	return cmd
}

// Output runs git and returns what it wrote to stdout.
// Stderr is kept only to enrich a CommandError.
func (r *Runner) Output(dir string, args ...string) ([]byte, error) {
	inv := r.invocation(dir, args)
	cmd := r.command(inv)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logInvocation(inv, start, err)

	if err != nil {
		return nil, classify(inv, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Run runs git with stdout and stderr discarded and reports whether it exited successfully.
// A non-zero exit is a valid "no"; only a failure to start git is an error.
func (r *Runner) Run(dir string, args ...string) (bool, error) {
	inv := r.invocation(dir, args)
	cmd := r.command(inv)

	start := time.Now()
	err := cmd.Run()
	logInvocation(inv, start, err)

	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, &LaunchError{Command: inv.String(), Err: err}
}

// Text runs git and returns its stdout decoded as UTF-8.
func (r *Runner) Text(dir string, args ...string) (string, error) {
	out, err := r.Output(dir, args...)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", &EncodingError{Command: r.invocation(dir, args).String(), Err: errInvalidUTF8}
	}
	return string(out), nil
}

// Path runs git and converts its output, minus the trailing newline, into a filesystem path.
func (r *Runner) Path(dir string, args ...string) (string, error) {
	out, err := r.Output(dir, args...)
	if err != nil {
		return "", err
	}
	out = bytes.TrimSuffix(out, []byte("\n"))
	return r.toPath(r.invocation(dir, args), out)
}

func (r *Runner) toPath(inv Invocation, raw []byte) (string, error) {
	p, err := bytesToPath(raw)
	if err != nil {
		return "", &EncodingError{Command: inv.String(), Err: err}
	}
	return p, nil
}

func classify(inv Invocation, err error, stderr string) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &LaunchError{Command: inv.String(), Err: err}
	}

	cmdErr := &CommandError{Command: inv.String(), Stderr: stderr}
	// ExitCode reports -1 when the process was terminated by a signal.
	if code := exitErr.ExitCode(); code >= 0 {
		cmdErr.ExitCode = code
		cmdErr.HasExitCode = true
	}
	return cmdErr
}

func logInvocation(inv Invocation, start time.Time, err error) {
	metadata := map[string]any{
		"dir":         inv.Dir,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		metadata["error"] = err.Error()
		devlog.Debug("git command failed: "+inv.String(), metadata)
		return
	}
	devlog.Debug("git command: "+inv.String(), metadata)
}
