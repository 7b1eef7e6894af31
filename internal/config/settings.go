// Package config handles the assembly layout and the optional distasm.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the configuration directory.
const FileName = "distasm.yaml"

// Settings tunes how base archives are recognized and customized.
// Every field has a default, so the settings file is optional.
type Settings struct {
	Product   ProductConfig   `yaml:"product"`
	Installer InstallerConfig `yaml:"installer"`
	Branding  BrandingConfig  `yaml:"branding"`
	Tools     ToolsConfig     `yaml:"tools"`
	Fetch     FetchConfig     `yaml:"fetch"`
}

// ProductConfig describes the vendor base archives.
type ProductConfig struct {
	// ArchivePrefix is the file name prefix of base archives, e.g. "eclipse-SDK".
	ArchivePrefix string `yaml:"archive_prefix"`
	// RootDir is the top-level directory inside a base archive.
	RootDir string `yaml:"root_dir"`
}

// InstallerConfig configures the feature installer invocation.
type InstallerConfig struct {
	Application string `yaml:"application"`
	Profile     string `yaml:"profile"`
	// ExtraArgs are appended to every invocation, split with shell quoting rules.
	ExtraArgs string `yaml:"extra_args"`
}

// BrandingConfig configures the splash label.
type BrandingConfig struct {
	SplashGlob string `yaml:"splash_glob"`
	Font       string `yaml:"font"`
	PointSize  int    `yaml:"point_size"`
	Fill       string `yaml:"fill"`
	Background string `yaml:"background"`
	Gravity    string `yaml:"gravity"`
	Geometry   string `yaml:"geometry"`
}

// ToolsConfig names the external programs used by an assembly.
type ToolsConfig struct {
	Tar       string `yaml:"tar"`
	Unzip     string `yaml:"unzip"`
	Zip       string `yaml:"zip"`
	Convert   string `yaml:"convert"`
	Composite string `yaml:"composite"`
}

// FetchConfig lists base archives to download into the source directory.
type FetchConfig struct {
	Version string `yaml:"version"`
	// URL is a go-getter source pattern, e.g. "https://example.org/{{file}}".
	URL string `yaml:"url"`
	// Archives are "<platform>.<filetype>" entries, e.g. "win32.win32.x86_64.zip".
	Archives []string `yaml:"archives"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Product: ProductConfig{
			ArchivePrefix: "eclipse-SDK",
			RootDir:       "eclipse",
		},
		Installer: InstallerConfig{
			Application: "org.eclipse.equinox.p2.director",
			Profile:     "SDKProfile",
		},
		Branding: BrandingConfig{
			SplashGlob: "plugins/org.eclipse.platform*/splash.bmp",
			Font:       "Nimbus-Sans-Regular",
			PointSize:  14,
			Fill:       "white",
			Background: "#00000000",
			Gravity:    "northeast",
			Geometry:   "+62+10",
		},
		Tools: ToolsConfig{
			Tar:       "tar",
			Unzip:     "unzip",
			Zip:       "zip",
			Convert:   "convert",
			Composite: "composite",
		},
	}
}

// LoadSettings reads settings from the given path on top of the defaults.
// If the file doesn't exist, it returns the defaults (no error).
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}

		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	if err := ValidateSettings(s); err != nil {
		return nil, fmt.Errorf("validating settings %s: %w", path, err)
	}

	return s, nil
}
