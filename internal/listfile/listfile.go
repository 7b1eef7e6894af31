// Package listfile reads the line-oriented list files that name installable
// units and the repositories to resolve them from.
package listfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Separator joins list entries into the single argument handed to the installer.
const Separator = ","

// UnknownTag is the tag used when a list file name does not follow the
// <order>.<tag>.<ext> convention.
const UnknownTag = "unknown"

// Read returns the entries of a list file in file order. Lines are trimmed of
// surrounding whitespace; blank lines and lines starting with '#' are dropped.
func Read(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading list file %s: %w", path, err)
	}
	defer f.Close()

	var entries []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entries = append(entries, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading list file %s: %w", path, err)
	}

	return entries, nil
}

// Join joins list entries with Separator into a single installer argument.
func Join(entries []string) string {
	return strings.Join(entries, Separator)
}

// TagName derives the installation tag from a list file name: the middle
// segment of "<order>.<tag>.<ext>", or UnknownTag for any other shape.
//
//	TagName("10.myfeature.iulist") → "myfeature"
func TagName(name string) string {
	parts := strings.Split(filepath.Base(name), ".")
	if len(parts) == 3 {
		return parts[1]
	}

	return UnknownTag
}
