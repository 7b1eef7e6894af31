package installer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/runner"
)

// Opts configures a Driver.
type Opts struct {
	// Runner executes the installer.
	Runner runner.Runner
	// Binary is the installer executable.
	Binary string
	// Settings configures application, profile and extra arguments.
	// Zero fields fall back to the defaults.
	Settings config.InstallerConfig
	// OnSpec is called before each installer invocation.
	OnSpec func(spec *Spec)
	// Logger for debug output.
	Logger *slog.Logger
}

// Driver invokes the external installer.
type Driver struct {
	runner      runner.Runner
	binary      string
	application string
	profile     string
	extraArgs   []string
	onSpec      func(spec *Spec)
	logger      *slog.Logger
}

// NewDriver creates a Driver. The binary path is made absolute and the extra
// arguments are split with shell quoting rules.
func NewDriver(opts *Opts) (*Driver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Binary == "" {
		return nil, fmt.Errorf("installer binary is required")
	}

	binary, err := filepath.Abs(opts.Binary)
	if err != nil {
		return nil, fmt.Errorf("resolving installer binary: %w", err)
	}

	defaults := config.DefaultSettings().Installer

	application := opts.Settings.Application
	if application == "" {
		application = defaults.Application
	}

	profile := opts.Settings.Profile
	if profile == "" {
		profile = defaults.Profile
	}

	extra, err := shellwords.Parse(opts.Settings.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("parsing installer extra_args: %w", err)
	}

	return &Driver{
		runner:      opts.Runner,
		binary:      binary,
		application: application,
		profile:     profile,
		extraArgs:   extra,
		onSpec:      opts.OnSpec,
		logger:      logger,
	}, nil
}

// Args returns the installer arguments for installing spec into destination.
func (d *Driver) Args(destination string, spec *Spec) []string {
	args := []string{
		"-application", d.application,
		"-repository", spec.ReposArg(),
		"-installIU", spec.UnitsArg(),
		"-destination", destination,
		"-tag", spec.Tag,
		"-profile", d.profile,
	}

	return append(args, d.extraArgs...)
}

// Install runs the installer once per spec, in order. The first failure
// stops the remaining installs.
func (d *Driver) Install(ctx context.Context, destination string, specs []Spec) error {
	for i := range specs {
		spec := &specs[i]

		if d.onSpec != nil {
			d.onSpec(spec)
		}

		if len(spec.Units) == 0 {
			d.logger.Warn("unit list is empty", "iulist", spec.UnitsFile)
		}

		d.logger.Debug("installing units", "tag", spec.Tag, "units", len(spec.Units), "repositories", len(spec.Repositories))

		cmd := runner.Command{Name: d.binary, Args: d.Args(destination, spec)}
		if _, err := runner.Check(ctx, d.runner, cmd); err != nil {
			return fmt.Errorf("installing %s: %w", filepath.Base(spec.UnitsFile), err)
		}
	}

	return nil
}
