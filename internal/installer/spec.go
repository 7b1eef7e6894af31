// Package installer discovers feature list pairs and drives the external
// feature installer once per pair.
package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/donaldgifford/distasm/internal/listfile"
)

// List file extensions.
const (
	UnitsExt = ".iulist"
	ReposExt = ".repolist"
)

// Spec is one installation batch: the units of an .iulist file resolved
// from the repositories of its .repolist sibling.
type Spec struct {
	// Tag labels the batch in the installer's profile.
	Tag string
	// Units are the installable unit identifiers, in file order.
	Units []string
	// Repositories are the repository URIs, in file order.
	Repositories []string
	// UnitsFile is the absolute path of the .iulist file.
	UnitsFile string
	// ReposFile is the absolute path of the .repolist file.
	ReposFile string
}

// UnitsArg returns the units joined into the installer's list syntax.
func (s *Spec) UnitsArg() string {
	return listfile.Join(s.Units)
}

// ReposArg returns the repositories joined into the installer's list syntax.
func (s *Spec) ReposArg() string {
	return listfile.Join(s.Repositories)
}

// ReposFileFor returns the .repolist sibling of an .iulist path.
func ReposFileFor(unitsFile string) string {
	return strings.TrimSuffix(unitsFile, UnitsExt) + ReposExt
}

// Pair is an .iulist file and, when present, its .repolist sibling.
type Pair struct {
	UnitsFile string
	ReposFile string
	// Matched is false when the .repolist sibling does not exist.
	Matched bool
}

// FindPairs lists the .iulist files directly under configDir in file name
// order, together with their .repolist siblings.
func FindPairs(configDir string) ([]Pair, error) {
	dir, err := filepath.Abs(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading config directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), UnitsExt) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	pairs := make([]Pair, 0, len(names))

	for _, name := range names {
		units := filepath.Join(dir, name)
		repos := ReposFileFor(units)

		matched, err := isFile(repos)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, Pair{UnitsFile: units, ReposFile: repos, Matched: matched})
	}

	return pairs, nil
}

// Discover reads every matched list pair under configDir into a Spec, in file
// name order. An .iulist without a .repolist sibling is skipped.
func Discover(configDir string, logger *slog.Logger) ([]Spec, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pairs, err := FindPairs(configDir)
	if err != nil {
		return nil, err
	}

	specs := make([]Spec, 0, len(pairs))

	for _, p := range pairs {
		if !p.Matched {
			logger.Debug("skipping unit list without repository list", "iulist", p.UnitsFile)

			continue
		}

		spec, err := Load(p.UnitsFile, p.ReposFile)
		if err != nil {
			return nil, err
		}

		specs = append(specs, *spec)
	}

	return specs, nil
}

// Load reads one list pair.
func Load(unitsFile, reposFile string) (*Spec, error) {
	units, err := listfile.Read(unitsFile)
	if err != nil {
		return nil, err
	}

	repos, err := listfile.Read(reposFile)
	if err != nil {
		return nil, err
	}

	return &Spec{
		Tag:          listfile.TagName(unitsFile),
		Units:        units,
		Repositories: repos,
		UnitsFile:    unitsFile,
		ReposFile:    reposFile,
	}, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	return !info.IsDir(), nil
}
