// Package asmerr defines the failure taxonomy of an assembly run and maps
// failures to process exit codes.
package asmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for failures that do not carry their own.
const (
	ExitConfiguration = -1
	ExitGeneric       = 1
	ExitNotStarted    = 127
)

var (
	// ErrConfiguration marks recognized configuration errors such as an
	// unsupported archive format or an ambiguous branding target.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks a spawned process that exited non-zero.
	ErrExternalTool = errors.New("external tool failed")
	// ErrSourceMissing is returned when the source directory does not exist.
	ErrSourceMissing = errors.New("source directory does not exist")
)

// ConfigError is a recognized configuration problem.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// Configf returns a ConfigError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ToolError reports a failed external process.
type ToolError struct {
	// Command is the program and its arguments.
	Command []string
	// ExitCode is the exit status of the process, or ExitNotStarted when it
	// could not be launched.
	ExitCode int
	// Stderr holds the tail of the process's standard error, if captured.
	Stderr string
	// Err is the underlying launch error, if any.
	Err error
}

func (e *ToolError) Error() string {
	name := "<empty>"
	if len(e.Command) > 0 {
		name = e.Command[0]
	}

	msg := fmt.Sprintf("%s exited with status %d", name, e.ExitCode)
	if e.Err != nil {
		msg = fmt.Sprintf("%s could not be started: %v", name, e.Err)
	}

	if tail := strings.TrimSpace(e.Stderr); tail != "" {
		msg += ": " + tail
	}

	return msg
}

func (e *ToolError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrExternalTool, e.Err}
	}

	return []error{ErrExternalTool}
}

// SourceMissing returns an error for an absent source directory.
func SourceMissing(dir string) error {
	return fmt.Errorf("%w: %s", ErrSourceMissing, dir)
}

// ExitCode maps an error to the exit status the process should terminate with.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		if toolErr.ExitCode <= 0 {
			return ExitGeneric
		}

		return toolErr.ExitCode
	}

	if errors.Is(err, ErrConfiguration) {
		return ExitConfiguration
	}

	return ExitGeneric
}
