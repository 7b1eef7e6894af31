// Package workspace owns the directories an assembly run writes to: an
// ephemeral work area invalidated at the start of every run, and a
// persistent target area that accumulates outputs across runs.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Provider hands out the directories of one assembly run.
type Provider interface {
	// Reset discards all work state and makes sure the target area exists.
	Reset() error
	// PlatformDir returns an empty work directory for platform, removing
	// whatever a previous attempt left there.
	PlatformDir(platform string) (string, error)
	// WorkDir is the root of the ephemeral work area.
	WorkDir() string
	// TargetDir is where finished archives are written.
	TargetDir() string
}

// Dirs is a Provider backed by two fixed directories.
type Dirs struct {
	work   string
	target string
	logger *slog.Logger
}

// New creates a Dirs provider. Neither directory is touched until Reset.
func New(workDir, targetDir string, logger *slog.Logger) *Dirs {
	if logger == nil {
		logger = slog.Default()
	}

	return &Dirs{work: workDir, target: targetDir, logger: logger}
}

// Reset removes and recreates the work directory and creates the target
// directory if it is missing. The target directory is never cleared.
func (d *Dirs) Reset() error {
	if err := os.RemoveAll(d.work); err != nil {
		return fmt.Errorf("removing work directory %s: %w", d.work, err)
	}

	if err := os.MkdirAll(d.work, 0o750); err != nil {
		return fmt.Errorf("creating work directory %s: %w", d.work, err)
	}

	if err := os.MkdirAll(d.target, 0o750); err != nil {
		return fmt.Errorf("creating target directory %s: %w", d.target, err)
	}

	d.logger.Debug("workspace reset", "work", d.work, "target", d.target)

	return nil
}

// PlatformDir implements Provider.
func (d *Dirs) PlatformDir(platform string) (string, error) {
	if platform == "" || filepath.Base(platform) != platform || platform == "." || platform == ".." {
		return "", fmt.Errorf("invalid platform directory name %q", platform)
	}

	dir := filepath.Join(d.work, platform)

	if err := Recreate(dir); err != nil {
		return "", err
	}

	return dir, nil
}

// WorkDir implements Provider.
func (d *Dirs) WorkDir() string { return d.work }

// TargetDir implements Provider.
func (d *Dirs) TargetDir() string { return d.target }

// Recreate removes dir recursively if it exists and creates it empty.
func Recreate(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	return nil
}
