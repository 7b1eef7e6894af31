package config

import (
	"fmt"
	"regexp"
	"strings"
)

// validGravities are the ImageMagick gravity values accepted for the label.
var validGravities = map[string]bool{
	"northwest": true,
	"north":     true,
	"northeast": true,
	"west":      true,
	"center":    true,
	"east":      true,
	"southwest": true,
	"south":     true,
	"southeast": true,
}

// geometryPattern matches an ImageMagick offset such as "+62+10".
var geometryPattern = regexp.MustCompile(`^[+-]\d+[+-]\d+$`)

// ValidateSettings checks Settings for required fields and valid values.
func ValidateSettings(s *Settings) error {
	if strings.TrimSpace(s.Product.ArchivePrefix) == "" {
		return fmt.Errorf("product.archive_prefix is required")
	}

	if strings.TrimSpace(s.Product.RootDir) == "" {
		return fmt.Errorf("product.root_dir is required")
	}

	if strings.ContainsAny(s.Product.RootDir, `/\`) {
		return fmt.Errorf("product.root_dir %q must be a single directory name", s.Product.RootDir)
	}

	if strings.TrimSpace(s.Installer.Application) == "" {
		return fmt.Errorf("installer.application is required")
	}

	if strings.TrimSpace(s.Installer.Profile) == "" {
		return fmt.Errorf("installer.profile is required")
	}

	if err := validateBranding(&s.Branding); err != nil {
		return err
	}

	if err := validateTools(&s.Tools); err != nil {
		return err
	}

	return validateFetch(&s.Fetch)
}

func validateBranding(b *BrandingConfig) error {
	if strings.TrimSpace(b.SplashGlob) == "" {
		return fmt.Errorf("branding.splash_glob is required")
	}

	if b.PointSize <= 0 {
		return fmt.Errorf("branding.point_size must be positive, got %d", b.PointSize)
	}

	if !validGravities[strings.ToLower(b.Gravity)] {
		return fmt.Errorf("branding.gravity: invalid value %q", b.Gravity)
	}

	if !geometryPattern.MatchString(b.Geometry) {
		return fmt.Errorf("branding.geometry: invalid offset %q, expected e.g. \"+62+10\"", b.Geometry)
	}

	return nil
}

func validateTools(t *ToolsConfig) error {
	tools := []struct {
		key, value string
	}{
		{"tar", t.Tar},
		{"unzip", t.Unzip},
		{"zip", t.Zip},
		{"convert", t.Convert},
		{"composite", t.Composite},
	}

	for _, tool := range tools {
		if strings.TrimSpace(tool.value) == "" {
			return fmt.Errorf("tools.%s is required", tool.key)
		}
	}

	return nil
}

func validateFetch(f *FetchConfig) error {
	if len(f.Archives) == 0 {
		return nil
	}

	if strings.TrimSpace(f.URL) == "" {
		return fmt.Errorf("fetch.url is required when fetch.archives is set")
	}

	if strings.TrimSpace(f.Version) == "" {
		return fmt.Errorf("fetch.version is required when fetch.archives is set")
	}

	for i, a := range f.Archives {
		platform, fileType, ok := strings.Cut(a, ".")
		if !ok || platform == "" || fileType == "" {
			return fmt.Errorf("fetch.archives[%d]: %q must have the form <platform>.<filetype>", i, a)
		}
	}

	return nil
}
