// Package branding stamps the distribution description onto the splash image
// of a customized distribution.
package branding

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/runner"
)

// labelFile is the rendered label, written to a scratch directory.
const labelFile = "label.png"

// FindSplash returns the single file under distDir matching pattern.
// Only pattern is a glob; distDir is taken literally. Zero or several
// matches are a configuration error.
func FindSplash(distDir, pattern string) (string, error) {
	rel, err := fs.Glob(os.DirFS(distDir), filepath.ToSlash(pattern))
	if err != nil {
		return "", asmerr.Configf("invalid splash pattern %q: %v", pattern, err)
	}

	matches := make([]string, 0, len(rel))
	for _, m := range rel {
		matches = append(matches, filepath.Join(distDir, filepath.FromSlash(m)))
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", asmerr.Configf("no splash screen matching %s in %s", pattern, distDir)
	default:
		return "", asmerr.Configf("found %d splash screens matching %s in %s, expected exactly one",
			len(matches), pattern, distDir)
	}
}

// Opts configures a Stamper.
type Opts struct {
	// Runner executes the image tools.
	Runner runner.Runner
	// Settings configures the label appearance. Zero fields use the defaults.
	Settings config.BrandingConfig
	// Tools names the convert and composite programs.
	Tools config.ToolsConfig
	// Logger for debug output.
	Logger *slog.Logger
}

// Stamper overlays a text label onto a splash image.
type Stamper struct {
	runner   runner.Runner
	settings config.BrandingConfig
	convert  string
	compose  string
	logger   *slog.Logger
}

// New creates a Stamper.
func New(opts *Opts) *Stamper {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defaults := config.DefaultSettings()

	s := opts.Settings
	if s.SplashGlob == "" {
		s.SplashGlob = defaults.Branding.SplashGlob
	}

	if s.Font == "" {
		s.Font = defaults.Branding.Font
	}

	if s.PointSize == 0 {
		s.PointSize = defaults.Branding.PointSize
	}

	if s.Fill == "" {
		s.Fill = defaults.Branding.Fill
	}

	if s.Background == "" {
		s.Background = defaults.Branding.Background
	}

	if s.Gravity == "" {
		s.Gravity = defaults.Branding.Gravity
	}

	if s.Geometry == "" {
		s.Geometry = defaults.Branding.Geometry
	}

	convert := opts.Tools.Convert
	if convert == "" {
		convert = defaults.Tools.Convert
	}

	compose := opts.Tools.Composite
	if compose == "" {
		compose = defaults.Tools.Composite
	}

	return &Stamper{
		runner:   opts.Runner,
		settings: s,
		convert:  convert,
		compose:  compose,
		logger:   logger,
	}
}

// Stamp renders text as a label and composites it onto the splash image of
// distDir, overwriting the image in place. Both tool invocations are checked.
func (s *Stamper) Stamp(ctx context.Context, distDir, text string) error {
	splash, err := FindSplash(distDir, s.settings.SplashGlob)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp(filepath.Dir(distDir), ".branding-")
	if err != nil {
		return fmt.Errorf("creating branding scratch directory: %w", err)
	}

	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			s.logger.Warn("removing branding scratch directory", "dir", scratch, "error", err)
		}
	}()

	label := filepath.Join(scratch, labelFile)

	s.logger.Debug("stamping splash screen", "splash", splash, "text", text)

	if _, err := runner.Check(ctx, s.runner, s.LabelCommand(text, label)); err != nil {
		return fmt.Errorf("rendering splash label: %w", err)
	}

	if _, err := runner.Check(ctx, s.runner, s.CompositeCommand(label, splash)); err != nil {
		return fmt.Errorf("compositing splash screen: %w", err)
	}

	return nil
}

// LabelCommand returns the command rendering text into the image file out.
func (s *Stamper) LabelCommand(text, out string) runner.Command {
	return runner.Command{
		Name: s.convert,
		Args: []string{
			"-background", s.settings.Background,
			"-pointsize", strconv.Itoa(s.settings.PointSize),
			"-font", s.settings.Font,
			"-fill", s.settings.Fill,
			"label:" + escapeLabel(text),
			out,
		},
	}
}

// CompositeCommand returns the command overlaying label onto splash in place.
func (s *Stamper) CompositeCommand(label, splash string) runner.Command {
	return runner.Command{
		Name: s.compose,
		Args: []string{
			"-gravity", s.settings.Gravity,
			"-geometry", s.settings.Geometry,
			label,
			splash,
			splash,
		},
	}
}

// escapeLabel keeps the label text literal: ImageMagick expands % escapes
// and reads the label from a file when the text starts with @.
func escapeLabel(text string) string {
	text = strings.ReplaceAll(text, "%", "%%")
	if strings.HasPrefix(text, "@") {
		text = `\` + text
	}

	return text
}
