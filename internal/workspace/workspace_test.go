package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/distasm/internal/workspace"
)

func TestReset_WipesWorkKeepsTarget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	workDir := filepath.Join(root, "work")
	targetDir := filepath.Join(root, "target")

	stale := filepath.Join(workDir, "linux.gtk.x86_64", "acme", "stale.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o750))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	previous := filepath.Join(targetDir, "acme-win32.zip")
	require.NoError(t, os.MkdirAll(targetDir, 0o750))
	require.NoError(t, os.WriteFile(previous, []byte("zip"), 0o644))

	ws := workspace.New(workDir, targetDir, nil)
	require.NoError(t, ws.Reset())

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.FileExists(t, previous)
}

func TestReset_CreatesMissingDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws := workspace.New(filepath.Join(root, "work"), filepath.Join(root, "target"), nil)

	require.NoError(t, ws.Reset())
	assert.DirExists(t, ws.WorkDir())
	assert.DirExists(t, ws.TargetDir())
}

func TestPlatformDir_Recreated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws := workspace.New(filepath.Join(root, "work"), filepath.Join(root, "target"), nil)
	require.NoError(t, ws.Reset())

	dir, err := ws.PlatformDir("win32")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "work", "win32"), dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "leftover"), []byte("x"), 0o644))

	again, err := ws.PlatformDir("win32")
	require.NoError(t, err)
	assert.Equal(t, dir, again)

	entries, err := os.ReadDir(again)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlatformDir_Invalid(t *testing.T) {
	t.Parallel()

	ws := workspace.New(t.TempDir(), t.TempDir(), nil)

	for _, name := range []string{"", ".", "..", "../escape", "a/b"} {
		_, err := ws.PlatformDir(name)
		assert.Error(t, err, name)
	}
}
