// Package catalog discovers vendor base archives and derives, per archive,
// its platform, format and work directory.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/donaldgifford/distasm/internal/asmerr"
)

// Descriptor describes one discovered base archive.
type Descriptor struct {
	// ArchivePath is the absolute path of the base archive.
	ArchivePath string
	// Version is the vendor version segment of the file name.
	Version string
	// Platform identifies the target build variant, e.g. "linux.gtk.x86_64".
	Platform string
	// FileType is the raw file type suffix, e.g. "tar.gz".
	FileType string
	// Format is the parsed archive format.
	Format Format
	// WorkDir is the absolute per-platform work directory.
	WorkDir string
}

// Opts configures discovery.
type Opts struct {
	// SourceDir holds the base archives.
	SourceDir string
	// WorkDir is the parent of the per-platform work directories.
	WorkDir string
	// Prefix is the base archive name prefix, e.g. "eclipse-SDK".
	Prefix string
	// Logger for debug output.
	Logger *slog.Logger
}

// Discover scans the source directory for "<prefix>-*" archives. The result
// is sorted by platform, then file type. Archives of the same platform and
// file type produce the same output, so only the newest version is kept.
func Discover(opts *Opts) ([]Descriptor, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source directory: %w", err)
	}

	workDir, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolving work directory: %w", err)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	byOutput := make(map[string]Descriptor)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, opts.Prefix+"-") {
			continue
		}

		ver, platform, fileType, err := ParseArchiveName(name, opts.Prefix)
		if err != nil {
			return nil, err
		}

		d := Descriptor{
			ArchivePath: filepath.Join(sourceDir, name),
			Version:     ver,
			Platform:    platform,
			FileType:    fileType,
			Format:      ParseFormat(fileType),
			WorkDir:     filepath.Join(workDir, platform),
		}

		logger.Debug("found base archive", "file", name, "platform", platform, "version", ver)

		key := platform + "." + fileType

		prev, exists := byOutput[key]
		if !exists {
			byOutput[key] = d

			continue
		}

		keep, drop := newer(prev, d), d
		if keep.ArchivePath == d.ArchivePath {
			drop = prev
		}

		logger.Warn("multiple base archives for platform and file type, using newest",
			"platform", platform, "filetype", fileType, "using", filepath.Base(keep.ArchivePath), "ignoring", filepath.Base(drop.ArchivePath))

		byOutput[key] = keep
	}

	descs := make([]Descriptor, 0, len(byOutput))
	for _, d := range byOutput {
		descs = append(descs, d)
	}

	sort.Slice(descs, func(i, j int) bool {
		if descs[i].Platform != descs[j].Platform {
			return descs[i].Platform < descs[j].Platform
		}

		return descs[i].FileType < descs[j].FileType
	})

	return descs, nil
}

// ParseArchiveName splits "<prefix>-<version>-<platform>.<filetype>".
// The file type is "tar.<ext>" for compressed tarballs and the last
// extension otherwise.
//
//	ParseArchiveName("eclipse-SDK-3.7.0-linux.gtk.x86_64.tar.gz", "eclipse-SDK")
//	→ "3.7.0", "linux.gtk.x86_64", "tar.gz"
func ParseArchiveName(name, prefix string) (ver, platform, fileType string, err error) {
	rest, ok := strings.CutPrefix(name, prefix+"-")
	if !ok {
		return "", "", "", asmerr.Configf("archive %q does not start with %q", name, prefix+"-")
	}

	ver, variant, ok := strings.Cut(rest, "-")
	if !ok || ver == "" || variant == "" {
		return "", "", "", asmerr.Configf("archive %q does not match %s-<version>-<platform>.<filetype>", name, prefix)
	}

	platform, fileType, ok = splitFileType(variant)
	if !ok {
		return "", "", "", asmerr.Configf("archive %q has no <platform>.<filetype> segment", name)
	}

	return ver, platform, fileType, nil
}

func splitFileType(variant string) (platform, fileType string, ok bool) {
	if i := strings.LastIndex(variant, ".tar."); i > 0 && i+len(".tar.") < len(variant) {
		return variant[:i], variant[i+1:], true
	}

	i := strings.LastIndex(variant, ".")
	if i <= 0 || i == len(variant)-1 {
		return "", "", false
	}

	return variant[:i], variant[i+1:], true
}

// newer returns the descriptor with the higher version. Versions that do not
// parse are compared as strings.
func newer(a, b Descriptor) Descriptor {
	va, errA := version.NewVersion(a.Version)
	vb, errB := version.NewVersion(b.Version)

	if errA == nil && errB == nil {
		if vb.GreaterThan(va) {
			return b
		}

		return a
	}

	if b.Version > a.Version {
		return b
	}

	return a
}
