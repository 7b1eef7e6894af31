package config

import (
	"fmt"
	"path/filepath"
)

// Directory names under the configuration directory.
const (
	SourceDirName = "source"
	WorkDirName   = "work"
	TargetDirName = "target"
)

// Layout holds the absolute directories of an assembly.
type Layout struct {
	// ConfigDir holds the list files and, optionally, the settings file.
	ConfigDir string
	// SourceDir holds the vendor base archives.
	SourceDir string
	// WorkDir is scratch space, recreated on every run.
	WorkDir string
	// TargetDir receives the finished archives and is never cleared.
	TargetDir string
}

// NewLayout derives the fixed directory layout below configDir.
func NewLayout(configDir string) (Layout, error) {
	abs, err := filepath.Abs(configDir)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving config directory %s: %w", configDir, err)
	}

	return Layout{
		ConfigDir: abs,
		SourceDir: filepath.Join(abs, SourceDirName),
		WorkDir:   filepath.Join(abs, WorkDirName),
		TargetDir: filepath.Join(abs, TargetDirName),
	}, nil
}

// SettingsPath returns the default settings file location.
func (l Layout) SettingsPath() string {
	return filepath.Join(l.ConfigDir, FileName)
}
