package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSResolver_HomeOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "brew-home")
	r := OSResolver{Home: home, Resources: "/usr/share/brew"}

	settingsFile, err := r.SettingsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "settings.json"), settingsFile)
	assert.DirExists(t, home)

	catalog, err := r.CatalogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "languages"), catalog)
	assert.DirExists(t, catalog)

	bundled, err := r.BundledDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/usr/share/brew", "languages"), bundled)
}

func TestOSResolver_NoResources(t *testing.T) {
	bundled, err := OSResolver{Home: t.TempDir()}.BundledDir()
	require.NoError(t, err)
	assert.Empty(t, bundled)
}

func TestOSResolver_UnusableHome(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := OSResolver{Home: filepath.Join(file, "sub")}.SettingsFile()
	assert.ErrorIs(t, err, ErrResolve)
}

func TestPlatformDir_UsesAppName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir, err := platformDir("brew-test")
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(dir), "brew-test")
}

func TestStatic(t *testing.T) {
	root := t.TempDir()
	s := Static{
		Settings: filepath.Join(root, "a", "settings.json"),
		Catalog:  filepath.Join(root, "b", "languages"),
	}

	p, err := s.SettingsFile()
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "a"))
	assert.Equal(t, s.Settings, p)

	c, err := s.CatalogDir()
	require.NoError(t, err)
	assert.DirExists(t, c)

	_, err = Static{}.SettingsFile()
	assert.ErrorIs(t, err, ErrResolve)
	_, err = Static{}.CatalogDir()
	assert.ErrorIs(t, err, ErrResolve)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "file.json")

	require.NoError(t, WriteAtomic(path, []byte("one"), 0o644))
	require.NoError(t, WriteAtomic(path, []byte("two"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic_FailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := WriteAtomic(target, []byte("x"), 0o644)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "target", entries[0].Name())
}
