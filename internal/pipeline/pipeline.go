// Package pipeline orchestrates an assembly run: every discovered base
// archive is extracted, renamed, extended with features, branded and
// repackaged, one platform at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/donaldgifford/distasm/internal/archive"
	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/branding"
	"github.com/donaldgifford/distasm/internal/catalog"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/installer"
	"github.com/donaldgifford/distasm/internal/runner"
	"github.com/donaldgifford/distasm/internal/ui"
	"github.com/donaldgifford/distasm/internal/workspace"
)

// Opts holds the options for an assembly run.
type Opts struct {
	// Layout locates the source, work and target directories and the list files.
	Layout config.Layout

	// DistributionName names the output archives and their top-level directory.
	DistributionName string

	// Description is stamped onto the splash screen.
	Description string

	// InstallerBinary is the feature installer executable.
	InstallerBinary string

	// Settings tunes naming, tools and branding. Defaults are used when nil.
	Settings *config.Settings

	// Platforms restricts the run to matching platforms. Empty means all.
	Platforms []string

	// Workspace hands out work directories. Defaults to the layout's
	// work and target directories.
	Workspace workspace.Provider

	// Runner executes external tools. Defaults to an ExecRunner.
	Runner runner.Runner

	// UI narrates progress. Defaults to stdout.
	UI *ui.Writer

	// Logger for debug output.
	Logger *slog.Logger
}

// Output describes one packaged distribution.
type Output struct {
	Platform string   `json:"platform"`
	Archive  string   `json:"archive"`
	Specs    []string `json:"specs"`
}

// Result holds the outcome of a successful run.
type Result struct {
	RunID   string   `json:"run_id"`
	Outputs []Output `json:"outputs"`
}

// Run executes the assembly. The first failure aborts the run; archives
// already written to the target directory are left in place.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	runID := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With("run", runID)

	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	out := opts.UI
	if out == nil {
		out = ui.NewWriter(false)
	}

	if err := validateName(opts.DistributionName); err != nil {
		return nil, err
	}

	// 1. The source directory must exist.
	if err := checkSourceDir(opts.Layout.SourceDir); err != nil {
		return nil, err
	}

	// 2-3. Invalidate the work area and make sure the target area exists.
	ws := opts.Workspace
	if ws == nil {
		ws = workspace.New(opts.Layout.WorkDir, opts.Layout.TargetDir, logger)
	}

	if err := ws.Reset(); err != nil {
		return nil, fmt.Errorf("preparing workspace: %w", err)
	}

	// 4. Discover and validate every archive before running any tool.
	descs, err := discover(opts, settings, ws, logger)
	if err != nil {
		return nil, err
	}

	// 5. The same install specs apply to every platform.
	specs, err := installer.Discover(opts.Layout.ConfigDir, logger)
	if err != nil {
		return nil, fmt.Errorf("discovering install lists: %w", err)
	}

	logger.Debug("assembly planned", "platforms", len(descs), "specs", len(specs))

	run := opts.Runner
	if run == nil {
		run = runner.New(&runner.Opts{Logger: logger})
	}

	driver, err := installer.NewDriver(&installer.Opts{
		Runner:   run,
		Binary:   opts.InstallerBinary,
		Settings: settings.Installer,
		OnSpec: func(spec *installer.Spec) {
			out.Stepf("  -IUs: %s from: %s", filepath.Base(spec.UnitsFile), filepath.Base(spec.ReposFile))
		},
		Logger: logger,
	})
	if err != nil {
		return nil, asmerr.Configf("%v", err)
	}

	a := &assembler{
		opts:     opts,
		settings: settings,
		ws:       ws,
		ui:       out,
		archives: archive.New(&archive.Opts{Runner: run, Tools: settings.Tools, Logger: logger}),
		driver:   driver,
		stamper: branding.New(&branding.Opts{
			Runner:   run,
			Settings: settings.Branding,
			Tools:    settings.Tools,
			Logger:   logger,
		}),
		specs:  specs,
		logger: logger,
	}

	result := &Result{RunID: runID, Outputs: make([]Output, 0, len(descs))}

	// 6. One platform at a time.
	for i := range descs {
		o, err := a.assemble(ctx, &descs[i])
		if err != nil {
			return result, fmt.Errorf("assembling %s: %w", descs[i].Platform, err)
		}

		result.Outputs = append(result.Outputs, *o)
	}

	logger.Info("assembly complete", "outputs", len(result.Outputs))

	return result, nil
}

func validateName(name string) error {
	if name == "" {
		return asmerr.Configf("distribution name is required")
	}

	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return asmerr.Configf("distribution name %q must be a plain directory name", name)
	}

	return nil
}

func checkSourceDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return asmerr.SourceMissing(dir)
		}

		return fmt.Errorf("checking source directory: %w", err)
	}

	if !info.IsDir() {
		return asmerr.SourceMissing(dir)
	}

	return nil
}

func discover(opts *Opts, settings *config.Settings, ws workspace.Provider, logger *slog.Logger) ([]catalog.Descriptor, error) {
	all, err := catalog.Discover(&catalog.Opts{
		SourceDir: opts.Layout.SourceDir,
		WorkDir:   ws.WorkDir(),
		Prefix:    settings.Product.ArchivePrefix,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering base archives: %w", err)
	}

	descs := catalog.Filter(all, opts.Platforms)
	if len(opts.Platforms) > 0 && len(descs) == 0 {
		return nil, asmerr.Configf("no base archive matches platforms %s", strings.Join(opts.Platforms, ", "))
	}

	for i := range descs {
		if !descs[i].Format.Supported() {
			return nil, archive.UnknownFileType(descs[i].FileType)
		}
	}

	if len(descs) == 0 {
		logger.Warn("no base archives found", "source", opts.Layout.SourceDir, "prefix", settings.Product.ArchivePrefix)
	}

	return descs, nil
}

type assembler struct {
	opts     *Opts
	settings *config.Settings
	ws       workspace.Provider
	ui       *ui.Writer
	archives *archive.Adapter
	driver   *installer.Driver
	stamper  *branding.Stamper
	specs    []installer.Spec
	logger   *slog.Logger
}

func (a *assembler) assemble(ctx context.Context, d *catalog.Descriptor) (*Output, error) {
	name := a.opts.DistributionName
	logger := a.logger.With("platform", d.Platform)

	a.ui.Headingf("Assembling %s for %s...", name, d.Platform)

	workDir, err := a.ws.PlatformDir(d.Platform)
	if err != nil {
		return nil, err
	}

	a.ui.Step(" -extracting archive")

	if err := a.archives.Extract(ctx, d.ArchivePath, d.FileType, workDir); err != nil {
		return nil, err
	}

	a.ui.Step(" -renaming target")

	distDir, err := renameRoot(workDir, a.settings.Product.RootDir, name)
	if err != nil {
		return nil, err
	}

	a.ui.Step(" -installing IUs")

	if err := a.driver.Install(ctx, distDir, a.specs); err != nil {
		return nil, err
	}

	a.ui.Step(" -manipulating splash screen")

	if err := a.stamper.Stamp(ctx, distDir, a.opts.Description); err != nil {
		return nil, err
	}

	a.ui.Step(" -creating archive")

	path, err := a.archives.Create(ctx, &archive.CreateOpts{
		SourceDir:        workDir,
		FileType:         d.FileType,
		Platform:         d.Platform,
		DistributionName: name,
		TargetDir:        a.ws.TargetDir(),
	})
	if err != nil {
		return nil, err
	}

	a.ui.Step(" -done.")
	logger.Debug("platform assembled", "archive", path)

	tags := make([]string, 0, len(a.specs))
	for i := range a.specs {
		tags = append(tags, a.specs[i].Tag)
	}

	return &Output{Platform: d.Platform, Archive: path, Specs: tags}, nil
}

// renameRoot moves the archive's top-level directory to the distribution
// name and returns the new path.
func renameRoot(workDir, rootDir, name string) (string, error) {
	from := filepath.Join(workDir, rootDir)
	to := filepath.Join(workDir, name)

	info, err := os.Stat(from)
	if err != nil || !info.IsDir() {
		return "", asmerr.Configf("extracted archive has no top-level directory '%s'", rootDir)
	}

	if from == to {
		return to, nil
	}

	if err := os.Rename(from, to); err != nil {
		return "", fmt.Errorf("renaming %s to %s: %w", rootDir, name, err)
	}

	return to, nil
}
