// Package fetch downloads the base archives listed in the settings file into
// the source directory.
package fetch

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
	"github.com/donaldgifford/distasm/internal/getter"
	"github.com/donaldgifford/distasm/internal/ui"
)

// Fetcher downloads a single file.
type Fetcher interface {
	FetchFile(ctx context.Context, src, dest string, opts getter.FetchOpts) error
}

// Opts holds the options for a fetch run.
type Opts struct {
	// Layout locates the source directory.
	Layout config.Layout

	// Settings provides the product prefix and the fetch section.
	Settings *config.Settings

	// Force downloads archives that already exist.
	Force bool

	// Fetcher downloads files. Defaults to a go-getter backed Getter.
	Fetcher Fetcher

	// UI reports progress. Defaults to stdout.
	UI *ui.Writer

	// Logger for debug output.
	Logger *slog.Logger
}

// Archive is one base archive to fetch.
type Archive struct {
	// File is the base archive name in the source directory.
	File string
	// URL is the go-getter source.
	URL string
	// Platform is the target build variant.
	Platform string
	// FileType is the archive file type, e.g. "zip".
	FileType string
}

// Result lists what a fetch run did.
type Result struct {
	Fetched []string
	Skipped []string
}

// Resolve expands the fetch settings into the archives to download. The URL
// may only use the placeholders file, prefix, version, platform, filetype,
// os, ws and arch.
func Resolve(settings *config.Settings) ([]Archive, error) {
	prefix := settings.Product.ArchivePrefix
	f := settings.Fetch

	archives := make([]Archive, 0, len(f.Archives))

	for _, entry := range f.Archives {
		file := prefix + "-" + f.Version + "-" + entry

		_, platform, fileType, err := catalog.ParseArchiveName(file, prefix)
		if err != nil {
			return nil, err
		}

		p := catalog.ParsePlatform(platform)
		vars := map[string]string{
			"file":     file,
			"prefix":   prefix,
			"version":  f.Version,
			"platform": platform,
			"filetype": fileType,
			"os":       p.OS,
			"ws":       p.WS,
			"arch":     p.Arch,
		}

		for _, name := range getter.Placeholders(f.URL) {
			if _, ok := vars[name]; !ok {
				return nil, asmerr.Configf("fetch.url: unknown placeholder {{%s}}", name)
			}
		}

		archives = append(archives, Archive{
			File:     file,
			URL:      getter.ResolveURL(f.URL, vars),
			Platform: platform,
			FileType: fileType,
		})
	}

	return archives, nil
}

// Run downloads every configured archive that is not yet in the source
// directory. A failed download leaves no partial file behind.
func Run(ctx context.Context, opts *Opts) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := opts.UI
	if out == nil {
		out = ui.NewWriter(false)
	}

	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}

	if len(settings.Fetch.Archives) == 0 {
		return nil, asmerr.Configf("no archives to fetch: fetch.archives is empty in %s", config.FileName)
	}

	archives, err := Resolve(settings)
	if err != nil {
		return nil, err
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = getter.New(logger)
	}

	if err := os.MkdirAll(opts.Layout.SourceDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating source directory: %w", err)
	}

	result := &Result{}

	for _, a := range archives {
		dest := filepath.Join(opts.Layout.SourceDir, a.File)

		exists, err := fileExists(dest)
		if err != nil {
			return result, err
		}

		if exists && !opts.Force {
			logger.Debug("archive already present", "file", a.File)
			out.Infof("%s already present, skipping", a.File)
			result.Skipped = append(result.Skipped, a.File)

			continue
		}

		out.Infof("fetching %s", a.File)

		if err := download(ctx, fetcher, a, dest, opts.Layout.ConfigDir); err != nil {
			return result, err
		}

		out.Successf("fetched %s", a.File)
		result.Fetched = append(result.Fetched, a.File)
	}

	return result, nil
}

func download(ctx context.Context, fetcher Fetcher, a Archive, dest, pwd string) error {
	part := filepath.Join(filepath.Dir(dest), "."+a.File+".part")

	if err := fetcher.FetchFile(ctx, a.URL, part, getter.FetchOpts{Pwd: pwd}); err != nil {
		_ = os.Remove(part)

		return fmt.Errorf("downloading %s: %w", a.File, err)
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)

		return fmt.Errorf("storing %s: %w", a.File, err)
	}

	return nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	return !info.IsDir(), nil
}
