package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/distasm/internal/ui"
)

func TestWriter_Success_NoColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Success("done")

	assert.Contains(t, buf.String(), "✓")
	assert.Contains(t, buf.String(), "done")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestWriter_Success_WithColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, false)

	w.Success("done")

	assert.Contains(t, buf.String(), "\033[32m") // green
	assert.Contains(t, buf.String(), "done")
}

func TestWriter_Warning(t *testing.T) {
	t.Parallel()

	var errBuf bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &errBuf, true)

	w.Warning("caution")

	assert.Contains(t, errBuf.String(), "warning:")
	assert.Contains(t, errBuf.String(), "caution")
}

func TestWriter_Error(t *testing.T) {
	t.Parallel()

	var errBuf bytes.Buffer
	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &errBuf, true)

	w.Error("something broke")

	assert.Contains(t, errBuf.String(), "error:")
	assert.Contains(t, errBuf.String(), "something broke")
}

func TestWriter_Info(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Info("status update")

	assert.Contains(t, buf.String(), "info:")
	assert.Contains(t, buf.String(), "status update")
}

func TestWriter_Formatted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Successf("created %d files", 5)

	assert.Contains(t, buf.String(), "created 5 files")
}

func TestWriter_Steps_NoColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	w.Headingf("Assembling %s for %s...", "acme", "win32")
	w.Step(" -extracting archive")
	w.Stepf("  -IUs: %s from: %s", "10.a.iulist", "10.a.repolist")
	w.Failure("I am terribly sorry but due to an error this run was aborted.")

	expected := "Assembling acme for win32...\n" +
		" -extracting archive\n" +
		"  -IUs: 10.a.iulist from: 10.a.repolist\n" +
		"I am terribly sorry but due to an error this run was aborted.\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriter_Failure_WithColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, false)

	w.Failure("aborted")

	assert.Contains(t, buf.String(), "\033[31m")
	assert.Contains(t, buf.String(), "aborted")
}

func TestWriter_Bold_NoColor(t *testing.T) {
	t.Parallel()

	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, true)

	result := w.Bold("text")
	assert.Equal(t, "text", result)
}

func TestWriter_Bold_WithColor(t *testing.T) {
	t.Parallel()

	w := ui.NewWriterWithOutputs(&bytes.Buffer{}, &bytes.Buffer{}, false)

	result := w.Bold("text")
	assert.Contains(t, result, "\033[1m")
}

func TestWriter_Heading_WithColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, false)

	w.Headingf("Assembling %s for %s...", "acme", "win32")

	assert.Contains(t, buf.String(), "\033[1m")
	assert.Contains(t, buf.String(), "Assembling acme for win32...")
}

func TestWriter_Out(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := ui.NewWriterWithOutputs(&buf, &bytes.Buffer{}, true)

	assert.Same(t, &buf, w.Out())
}
