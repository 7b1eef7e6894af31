package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/distasm/internal/config"
)

func TestValidateSettings_Defaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.ValidateSettings(config.DefaultSettings()))
}

func TestValidateSettings_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(s *config.Settings)
		errMsg string
	}{
		{
			name:   "empty prefix",
			mutate: func(s *config.Settings) { s.Product.ArchivePrefix = " " },
			errMsg: "product.archive_prefix is required",
		},
		{
			name:   "nested root dir",
			mutate: func(s *config.Settings) { s.Product.RootDir = "eclipse/sdk" },
			errMsg: "single directory name",
		},
		{
			name:   "empty profile",
			mutate: func(s *config.Settings) { s.Installer.Profile = "" },
			errMsg: "installer.profile is required",
		},
		{
			name:   "zero point size",
			mutate: func(s *config.Settings) { s.Branding.PointSize = 0 },
			errMsg: "branding.point_size must be positive",
		},
		{
			name:   "bad gravity",
			mutate: func(s *config.Settings) { s.Branding.Gravity = "upper-right" },
			errMsg: "branding.gravity",
		},
		{
			name:   "bad geometry",
			mutate: func(s *config.Settings) { s.Branding.Geometry = "62x10" },
			errMsg: "branding.geometry",
		},
		{
			name:   "missing tool",
			mutate: func(s *config.Settings) { s.Tools.Composite = "" },
			errMsg: "tools.composite is required",
		},
		{
			name: "fetch without url",
			mutate: func(s *config.Settings) {
				s.Fetch = config.FetchConfig{Version: "4.0", Archives: []string{"win32.zip"}}
			},
			errMsg: "fetch.url is required",
		},
		{
			name: "fetch without version",
			mutate: func(s *config.Settings) {
				s.Fetch = config.FetchConfig{URL: "https://example.org/{{file}}", Archives: []string{"win32.zip"}}
			},
			errMsg: "fetch.version is required",
		},
		{
			name: "fetch archive without filetype",
			mutate: func(s *config.Settings) {
				s.Fetch = config.FetchConfig{
					URL:      "https://example.org/{{file}}",
					Version:  "4.0",
					Archives: []string{"win32.zip", "macosx"},
				}
			},
			errMsg: "fetch.archives[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := config.DefaultSettings()
			tt.mutate(s)

			err := config.ValidateSettings(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateSettings_GravityCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := config.DefaultSettings()
	s.Branding.Gravity = "NorthEast"

	require.NoError(t, config.ValidateSettings(s))
}
