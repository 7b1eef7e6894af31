package catalog

import (
	"slices"
	"strings"
)

// Platform is an operating system, windowing system and architecture
// combination as used in vendor archive names.
type Platform struct {
	OS   string // "linux", "win32", "macosx"
	WS   string // "gtk", "win32", "cocoa"; empty when absent
	Arch string // "x86_64", "x86", "aarch64"; empty when absent
}

// ParsePlatform splits a platform identifier such as "linux.gtk.x86_64".
// Two-part identifiers are read as <os>.<arch>.
func ParsePlatform(id string) Platform {
	parts := strings.Split(id, ".")

	switch len(parts) {
	case 1:
		return Platform{OS: parts[0]}
	case 2:
		return Platform{OS: parts[0], Arch: parts[1]}
	default:
		return Platform{OS: parts[0], WS: parts[1], Arch: strings.Join(parts[2:], ".")}
	}
}

// String joins the non-empty parts with dots.
func (p Platform) String() string {
	var parts []string

	for _, s := range []string{p.OS, p.WS, p.Arch} {
		if s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, ".")
}

// Filter keeps the descriptors whose platform equals one of the filters or
// whose operating system does. An empty filter list keeps everything.
func Filter(descs []Descriptor, filters []string) []Descriptor {
	if len(filters) == 0 {
		return descs
	}

	var kept []Descriptor

	for i := range descs {
		d := &descs[i]
		if slices.Contains(filters, d.Platform) || slices.Contains(filters, ParsePlatform(d.Platform).OS) {
			kept = append(kept, *d)
		}
	}

	return kept
}
