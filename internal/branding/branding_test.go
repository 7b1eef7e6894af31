package branding_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/distasm/internal/asmerr"
	"github.com/donaldgifford/distasm/internal/branding"
	"github.com/donaldgifford/distasm/internal/config"
	"github.com/donaldgifford/distasm/internal/runner"
	"github.com/donaldgifford/distasm/internal/runner/runnertest"
)

const pattern = "plugins/org.eclipse.platform*/splash.bmp"

func makeSplash(t *testing.T, distDir, plugin string) string {
	t.Helper()

	dir := filepath.Join(distDir, "plugins", plugin)
	require.NoError(t, os.MkdirAll(dir, 0o750))

	path := filepath.Join(dir, "splash.bmp")
	require.NoError(t, os.WriteFile(path, []byte("BM"), 0o644))

	return path
}

func TestFindSplash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		plugins []string
		wantErr string
	}{
		{name: "single match", plugins: []string{"org.eclipse.platform_4.0.0.v2010"}},
		{name: "no match", wantErr: "no splash screen"},
		{
			name:    "ambiguous",
			plugins: []string{"org.eclipse.platform_3.7.0", "org.eclipse.platform_4.0.0"},
			wantErr: "found 2 splash screens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dist := t.TempDir()

			var want string
			for _, p := range tt.plugins {
				want = makeSplash(t, dist, p)
			}

			got, err := branding.FindSplash(dist, pattern)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.ErrorIs(t, err, asmerr.ErrConfiguration)
				assert.Equal(t, asmerr.ExitConfiguration, asmerr.ExitCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFindSplash_LiteralDistDir(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"acme[1]", "acme*", "acme?"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dist := filepath.Join(t.TempDir(), name)
			want := makeSplash(t, dist, "org.eclipse.platform_4.0.0")

			got, err := branding.FindSplash(dist, pattern)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFindSplash_IgnoresOtherPlugins(t *testing.T) {
	t.Parallel()

	dist := t.TempDir()
	want := makeSplash(t, dist, "org.eclipse.platform_4.0.0")
	makeSplash(t, dist, "org.eclipse.sdk_4.0.0")

	got, err := branding.FindSplash(dist, pattern)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStamp(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	dist := filepath.Join(work, "acme")
	splash := makeSplash(t, dist, "org.eclipse.platform_4.0.0")

	rec := runnertest.New()

	var label string

	rec.Handle("convert", func(cmd runner.Command) (runner.Result, error) {
		label = cmd.Args[len(cmd.Args)-1]
		if err := os.WriteFile(label, []byte("PNG"), 0o644); err != nil {
			return runner.Result{}, err
		}

		return runner.Result{}, nil
	})

	s := branding.New(&branding.Opts{Runner: rec})
	require.NoError(t, s.Stamp(t.Context(), dist, "Acme Build"))

	cmds := rec.Commands()
	require.Len(t, cmds, 2)

	assert.Equal(t, filepath.Dir(dist), filepath.Dir(filepath.Dir(label)))

	wantConvert := []string{
		"-background", "#00000000",
		"-pointsize", "14",
		"-font", "Nimbus-Sans-Regular",
		"-fill", "white",
		"label:Acme Build",
		label,
	}
	if diff := cmp.Diff(wantConvert, cmds[0].Args); diff != "" {
		t.Errorf("convert args mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "composite", cmds[1].Name)

	wantComposite := []string{"-gravity", "northeast", "-geometry", "+62+10", label, splash, splash}
	if diff := cmp.Diff(wantComposite, cmds[1].Args); diff != "" {
		t.Errorf("composite args mismatch (-want +got):\n%s", diff)
	}

	_, err := os.Stat(filepath.Dir(label))
	assert.True(t, errors.Is(err, os.ErrNotExist), "scratch directory should be removed")

	entries, err := os.ReadDir(work)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "acme", entries[0].Name())
}

func TestStamp_Settings(t *testing.T) {
	t.Parallel()

	dist := filepath.Join(t.TempDir(), "acme")
	makeSplash(t, dist, "org.eclipse.platform_4.0.0")

	rec := runnertest.New()
	s := branding.New(&branding.Opts{
		Runner: rec,
		Settings: config.BrandingConfig{
			Font:      "DejaVu-Sans",
			PointSize: 18,
			Fill:      "black",
			Gravity:   "southwest",
			Geometry:  "+5+5",
		},
		Tools: config.ToolsConfig{Convert: "magick-convert", Composite: "magick-composite"},
	})

	require.NoError(t, s.Stamp(t.Context(), dist, "x"))

	convert := rec.Named("magick-convert")
	require.Len(t, convert, 1)
	assert.Equal(t, []string{"-pointsize", "18", "-font", "DejaVu-Sans", "-fill", "black"}, convert[0].Args[2:8])

	composite := rec.Named("magick-composite")
	require.Len(t, composite, 1)
	assert.Equal(t, []string{"-gravity", "southwest", "-geometry", "+5+5"}, composite[0].Args[:4])
}

func TestStamp_MissingSplash(t *testing.T) {
	t.Parallel()

	dist := filepath.Join(t.TempDir(), "acme")
	require.NoError(t, os.MkdirAll(dist, 0o750))

	rec := runnertest.New()
	s := branding.New(&branding.Opts{Runner: rec})

	err := s.Stamp(t.Context(), dist, "Acme Build")
	require.Error(t, err)
	assert.Equal(t, asmerr.ExitConfiguration, asmerr.ExitCode(err))
	assert.Empty(t, rec.Commands())
}

func TestStamp_ToolFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		failing  string
		wantCmds int
		wantErr  string
	}{
		{name: "convert", failing: "convert", wantCmds: 1, wantErr: "rendering splash label"},
		{name: "composite", failing: "composite", wantCmds: 2, wantErr: "compositing splash screen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dist := filepath.Join(t.TempDir(), "acme")
			makeSplash(t, dist, "org.eclipse.platform_4.0.0")

			rec := runnertest.New()
			rec.Fail(tt.failing, 3)

			s := branding.New(&branding.Opts{Runner: rec})

			err := s.Stamp(t.Context(), dist, "Acme Build")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, asmerr.ErrExternalTool)
			assert.Equal(t, 3, asmerr.ExitCode(err))
			assert.Len(t, rec.Commands(), tt.wantCmds)
		})
	}
}

func TestLabelCommand_Escaping(t *testing.T) {
	t.Parallel()

	s := branding.New(&branding.Opts{Runner: runnertest.New()})

	tests := []struct {
		text string
		want string
	}{
		{text: "Acme Build", want: "label:Acme Build"},
		{text: "100% Acme", want: "label:100%% Acme"},
		{text: "@etc/passwd", want: `label:\@etc/passwd`},
		{text: "a \"quoted\" $(name)", want: "label:a \"quoted\" $(name)"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			cmd := s.LabelCommand(tt.text, "/tmp/label.png")
			assert.Equal(t, tt.want, cmd.Args[8])
		})
	}
}
