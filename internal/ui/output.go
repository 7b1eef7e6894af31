// Package ui provides consistent styled output for the distasm CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Writer provides styled output methods that respect color settings.
type Writer struct {
	out    io.Writer
	errOut io.Writer

	red    *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
}

// NewWriter creates a Writer that writes to stdout/stderr.
// Color is disabled when noColor is true or the NO_COLOR env var is set.
func NewWriter(noColor bool) *Writer {
	return NewWriterWithOutputs(os.Stdout, os.Stderr, noColor || os.Getenv("NO_COLOR") != "")
}

// NewWriterWithOutputs creates a Writer with custom output destinations.
// Intended for testing.
func NewWriterWithOutputs(out, errOut io.Writer, noColor bool) *Writer {
	w := &Writer{
		out:    out,
		errOut: errOut,
		red:    color.New(color.FgRed),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		bold:   color.New(color.Bold),
	}

	for _, c := range []*color.Color{w.red, w.green, w.yellow, w.cyan, w.bold} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return w
}

// Out returns the writer for regular output.
func (w *Writer) Out() io.Writer { return w.out }

// Heading prints a bold line announcing a unit of work.
func (w *Writer) Heading(msg string) {
	writeRaw(w.out, w.Bold(msg))
}

// Headingf prints a formatted heading.
func (w *Writer) Headingf(format string, args ...any) {
	w.Heading(fmt.Sprintf(format, args...))
}

// Step prints a progress line verbatim.
func (w *Writer) Step(msg string) {
	writeRaw(w.out, msg)
}

// Stepf prints a formatted progress line.
func (w *Writer) Stepf(format string, args ...any) {
	w.Step(fmt.Sprintf(format, args...))
}

// Failure prints an abort diagnostic in red on stdout, next to the
// progress narration it ends.
func (w *Writer) Failure(msg string) {
	writeRaw(w.out, w.red.Sprint(msg))
}

// Success prints a success message with a green checkmark prefix.
func (w *Writer) Success(msg string) {
	writeLine(w.out, w.green.Sprint("✓"), msg)
}

// Warning prints a warning message to stderr with a yellow prefix.
func (w *Writer) Warning(msg string) {
	writeLine(w.errOut, w.yellow.Sprint("warning:"), msg)
}

// Error prints an error message to stderr with a red prefix.
func (w *Writer) Error(msg string) {
	writeLine(w.errOut, w.red.Sprint("error:"), msg)
}

// Info prints an informational message with a cyan prefix.
func (w *Writer) Info(msg string) {
	writeLine(w.out, w.cyan.Sprint("info:"), msg)
}

// Bold prints text in bold.
func (w *Writer) Bold(msg string) string {
	return w.bold.Sprint(msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational message.
func (w *Writer) Infof(format string, args ...any) {
	w.Info(fmt.Sprintf(format, args...))
}

func writeLine(out io.Writer, prefix, msg string) {
	writeRaw(out, prefix+" "+msg)
}

func writeRaw(out io.Writer, line string) {
	if _, err := fmt.Fprintln(out, line); err != nil {
		// Best-effort output; if stdout fails there's nothing useful to do.
		return
	}
}
