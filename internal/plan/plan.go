// Package plan implements the distasm plan command: a dry run that shows
// what an assembly would process without running any tool.
package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/donaldgifford/distasm/internal/archive"
	"github.com/donaldgifford/distasm/internal/catalog"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/installer"
	"github.com/donaldgifford/distasm/internal/listfile"
)

// DefaultDistributionName is used in output names when none is given.
const DefaultDistributionName = "<distribution>"

// Opts configures the plan operation.
type Opts struct {
	// Layout locates the source directory and the list files.
	Layout config.Layout
	// Settings provides the archive prefix. Defaults are used when nil.
	Settings *config.Settings
	// DistributionName is used to render output archive names.
	DistributionName string
	// Platforms restricts the plan to matching platforms.
	Platforms []string
	// OutputFormat is "text" or "json".
	OutputFormat string
	// Writer is the output destination.
	Writer io.Writer
	// Logger for debug output.
	Logger *slog.Logger
}

// PlatformInfo represents a base archive in plan output.
type PlatformInfo struct {
	Platform  string `json:"platform"`
	Version   string `json:"version"`
	Format    string `json:"format"`
	Supported bool   `json:"supported"`
	Archive   string `json:"archive"`
	Output    string `json:"output"`
}

// SpecInfo represents a unit list in plan output.
type SpecInfo struct {
	Tag          string `json:"tag"`
	UnitsFile    string `json:"units_file"`
	ReposFile    string `json:"repos_file,omitempty"`
	Units        int    `json:"units"`
	Repositories int    `json:"repositories"`
	Skipped      bool   `json:"skipped"`
}

// Plan is the rendered dry run.
type Plan struct {
	Platforms []PlatformInfo `json:"platforms"`
	Specs     []SpecInfo     `json:"specs"`
}

// Build discovers base archives and list files. Unsupported formats and
// unpaired unit lists are reported rather than rejected.
func Build(opts *Opts) (*Plan, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	name := opts.DistributionName
	if name == "" {
		name = DefaultDistributionName
	}

	descs, err := catalog.Discover(&catalog.Opts{
		SourceDir: opts.Layout.SourceDir,
		WorkDir:   opts.Layout.WorkDir,
		Prefix:    settings.Product.ArchivePrefix,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering base archives: %w", err)
	}

	descs = catalog.Filter(descs, opts.Platforms)

	p := &Plan{
		Platforms: make([]PlatformInfo, 0, len(descs)),
		Specs:     []SpecInfo{},
	}

	for i := range descs {
		d := &descs[i]
		p.Platforms = append(p.Platforms, PlatformInfo{
			Platform:  d.Platform,
			Version:   d.Version,
			Format:    d.FileType,
			Supported: d.Format.Supported(),
			Archive:   filepath.Base(d.ArchivePath),
			Output:    archive.OutputName(name, d.Platform, d.FileType),
		})
	}

	pairs, err := installer.FindPairs(opts.Layout.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("discovering install lists: %w", err)
	}

	for _, pair := range pairs {
		if !pair.Matched {
			p.Specs = append(p.Specs, SpecInfo{
				Tag:       listfile.TagName(pair.UnitsFile),
				UnitsFile: filepath.Base(pair.UnitsFile),
				Skipped:   true,
			})

			continue
		}

		spec, err := installer.Load(pair.UnitsFile, pair.ReposFile)
		if err != nil {
			return nil, err
		}

		p.Specs = append(p.Specs, SpecInfo{
			Tag:          spec.Tag,
			UnitsFile:    filepath.Base(spec.UnitsFile),
			ReposFile:    filepath.Base(spec.ReposFile),
			Units:        len(spec.Units),
			Repositories: len(spec.Repositories),
		})
	}

	return p, nil
}

// Run builds the plan and writes it in the requested format.
func Run(opts *Opts) error {
	p, err := Build(opts)
	if err != nil {
		return err
	}

	switch opts.OutputFormat {
	case "json":
		return renderJSON(opts.Writer, p)
	default:
		return renderTable(opts.Writer, p)
	}
}

func renderTable(w io.Writer, p *Plan) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "PLATFORM\tVERSION\tFORMAT\tOUTPUT"); err != nil {
		return err
	}

	for i := range p.Platforms {
		e := &p.Platforms[i]

		output := e.Output
		if !e.Supported {
			output = "(unsupported file type)"
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Platform, e.Version, e.Format, output); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "\t\t\t"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "TAG\tUNITS\tREPOSITORIES\tLIST"); err != nil {
		return err
	}

	for i := range p.Specs {
		s := &p.Specs[i]

		units, repos := strconv.Itoa(s.Units), strconv.Itoa(s.Repositories)
		if s.Skipped {
			units, repos = "-", "(no "+installer.ReposExt+", skipped)"
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Tag, units, repos, s.UnitsFile); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, p *Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(p)
}
