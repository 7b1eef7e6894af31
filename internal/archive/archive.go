// Package archive extracts base archives into work directories and packages
// customized distributions with the system archive tools.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/catalog"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/runner"
	"github.com/donaldgifford/distasm/internal/workspace"
)

// Opts configures an Adapter.
type Opts struct {
	// Runner executes the archive tools.
	Runner runner.Runner
	// Tools names the tar, unzip and zip programs.
	Tools config.ToolsConfig
	// Logger for debug output.
	Logger *slog.Logger
}

// Adapter drives the external archive tools.
type Adapter struct {
	runner runner.Runner
	tools  config.ToolsConfig
	logger *slog.Logger
}

// New creates an Adapter. Missing tool names fall back to the defaults.
func New(opts *Opts) *Adapter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tools := config.DefaultSettings().Tools
	if opts.Tools.Tar != "" {
		tools.Tar = opts.Tools.Tar
	}

	if opts.Tools.Unzip != "" {
		tools.Unzip = opts.Tools.Unzip
	}

	if opts.Tools.Zip != "" {
		tools.Zip = opts.Tools.Zip
	}

	return &Adapter{runner: opts.Runner, tools: tools, logger: logger}
}

// UnknownFileType returns the configuration error for an archive type that
// cannot be processed.
func UnknownFileType(fileType string) error {
	return asmerr.Configf("unknown file type '%s'", fileType)
}

// Extract unpacks archivePath into destDir. destDir is removed and
// recreated first, so nothing from an earlier extraction survives.
func (a *Adapter) Extract(ctx context.Context, archivePath, fileType, destDir string) error {
	format := catalog.ParseFormat(fileType)
	if !format.Supported() {
		return UnknownFileType(fileType)
	}

	src, err := filepath.Abs(archivePath)
	if err != nil {
		return fmt.Errorf("resolving archive path: %w", err)
	}

	if err := workspace.Recreate(destDir); err != nil {
		return fmt.Errorf("preparing extraction directory: %w", err)
	}

	cmd := runner.Command{Dir: destDir}

	switch format {
	case catalog.TarGz:
		cmd.Name, cmd.Args = a.tools.Tar, []string{"-xzf", src}
	case catalog.Zip:
		cmd.Name, cmd.Args = a.tools.Unzip, []string{src}
	}

	a.logger.Debug("extracting archive", "archive", src, "dest", destDir)

	if _, err := runner.Check(ctx, a.runner, cmd); err != nil {
		return fmt.Errorf("extracting %s: %w", filepath.Base(src), err)
	}

	return nil
}

// CreateOpts describes an output archive.
type CreateOpts struct {
	// SourceDir contains the directory named DistributionName.
	SourceDir string
	// FileType selects the archive format, e.g. "tar.gz".
	FileType string
	// Platform is used in the output file name.
	Platform string
	// DistributionName is the top-level directory to archive.
	DistributionName string
	// TargetDir receives the archive.
	TargetDir string
}

// OutputName returns the file name of a packaged distribution.
func OutputName(distributionName, platform, fileType string) string {
	return distributionName + "-" + platform + "." + fileType
}

// Create packages SourceDir/DistributionName into
// TargetDir/<distributionName>-<platform>.<filetype>, replacing any existing
// archive at that path. It returns the archive path.
func (a *Adapter) Create(ctx context.Context, opts *CreateOpts) (string, error) {
	format := catalog.ParseFormat(opts.FileType)
	if !format.Supported() {
		return "", UnknownFileType(opts.FileType)
	}

	targetDir, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return "", fmt.Errorf("resolving target directory: %w", err)
	}

	out := filepath.Join(targetDir, OutputName(opts.DistributionName, opts.Platform, opts.FileType))

	if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("removing previous archive %s: %w", out, err)
	}

	cmd := runner.Command{Dir: opts.SourceDir}

	switch format {
	case catalog.TarGz:
		cmd.Name, cmd.Args = a.tools.Tar, []string{"-czf", out, opts.DistributionName}
	case catalog.Zip:
		cmd.Name, cmd.Args = a.tools.Zip, []string{"-r", out, opts.DistributionName}
	}

	a.logger.Debug("creating archive", "archive", out, "dir", opts.SourceDir)

	if _, err := runner.Check(ctx, a.runner, cmd); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Base(out), err)
	}

	return out, nil
}
