// Package runner runs the external tools an assembly depends on.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/donaldgifford/distasm/internal/asmerr"
)

// stderrTail bounds how much standard error is kept for diagnostics.
const stderrTail = 4 * 1024

// Command is a single external process invocation.
type Command struct {
	// Name is the program to run, looked up on PATH when not absolute.
	Name string
	// Args are the program arguments.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Argv returns the full command line.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for log output.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Result is the outcome of a process that was started.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner runs commands. Implementations return an error only when the
// process could not be started; a non-zero exit is reported in Result.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Opts configures an ExecRunner.
type Opts struct {
	// Stderr receives the live standard error of every process. Defaults to os.Stderr.
	Stderr io.Writer
	// Logger for debug output.
	Logger *slog.Logger
}

// ExecRunner runs commands with os/exec. Standard output is captured and not
// shown; standard error is passed through and also captured.
type ExecRunner struct {
	stderr io.Writer
	logger *slog.Logger
}

// New creates an ExecRunner.
func New(opts *Opts) *ExecRunner {
	r := &ExecRunner{stderr: os.Stderr, logger: slog.Default()}

	if opts == nil {
		return r
	}

	if opts.Stderr != nil {
		r.stderr = opts.Stderr
	}

	if opts.Logger != nil {
		r.logger = opts.Logger
	}

	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	r.logger.Debug("running command", "cmd", c.String(), "dir", c.Dir)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // commands are built from assembly settings, not untrusted input
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(r.stderr, &stderr)

	err := cmd.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Result{}, err
	}

	return Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}, nil
}

// Check runs cmd and converts launch failures and non-zero exits into an
// *asmerr.ToolError. A process stopped by ctx reports the context error.
func Check(ctx context.Context, r Runner, c Command) (Result, error) {
	res, err := r.Run(ctx, c)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("running %s: %w", c.Name, ctxErr)
		}

		return res, &asmerr.ToolError{Command: c.Argv(), ExitCode: asmerr.ExitNotStarted, Err: err}
	}

	if res.ExitCode != 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("running %s: %w", c.Name, ctxErr)
		}

		return res, &asmerr.ToolError{
			Command:  c.Argv(),
			ExitCode: res.ExitCode,
			Stderr:   tail(res.Stderr),
		}
	}

	return res, nil
}

func tail(b []byte) string {
	if len(b) > stderrTail {
		b = b[len(b)-stderrTail:]
	}

	return string(b)
}
