// Package paths resolves where settings and language packs live on disk.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	settingsFileName = "settings.json"
	languagesDirName = "languages"
)

// ErrResolve marks a failure to determine a base directory. It is fatal at
// startup: without it there is nowhere to persist anything.
var ErrResolve = errors.New("cannot resolve application directory")

// Resolver locates the persistence files. Implementations create the parent
// directories they return.
type Resolver interface {
	// SettingsFile returns the settings document path.
	SettingsFile() (string, error)
	// CatalogDir returns the directory of installed language packs.
	CatalogDir() (string, error)
	// BundledDir returns the read-only directory of bundled packs. An empty
	// path means none are shipped.
	BundledDir() (string, error)
}

// OSResolver follows each platform's conventions:
//
//	linux:   ~/.brew-app
//	darwin:  ~/Library/Application Support/brew-app
//	windows: %AppData%\brew-app
type OSResolver struct {
	// AppName names the per-user directory. Defaults to "brew-app".
	AppName string
	// Home overrides the per-user directory entirely when set.
	Home string
	// Resources is the bundled resource root; packs live in its languages
	// subdirectory.
	Resources string
}

func (r OSResolver) appName() string {
	if r.AppName == "" {
		return "brew-app"
	}
	return r.AppName
}

// BaseDir returns the per-user application directory, creating it.
func (r OSResolver) BaseDir() (string, error) {
	dir := r.Home
	if dir == "" {
		var err error
		dir, err = platformDir(r.appName())
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrResolve, dir, err)
	}
	return dir, nil
}

func platformDir(app string) (string, error) {
	switch runtime.GOOS {
	case "linux":
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("%w: home directory: %v", ErrResolve, err)
		}
		return filepath.Join(home, "."+app), nil
	case "darwin":
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("%w: home directory: %v", ErrResolve, err)
		}
		return filepath.Join(home, "Library", "Application Support", app), nil
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("%w: config directory: %v", ErrResolve, err)
		}
		return filepath.Join(cfg, app), nil
	}
}

func (r OSResolver) SettingsFile() (string, error) {
	base, err := r.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, settingsFileName), nil
}

func (r OSResolver) CatalogDir() (string, error) {
	base, err := r.BaseDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, languagesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrResolve, dir, err)
	}
	return dir, nil
}

func (r OSResolver) BundledDir() (string, error) {
	if r.Resources == "" {
		return "", nil
	}
	return filepath.Join(r.Resources, languagesDirName), nil
}

// Static is a fixed Resolver, useful when the locations are already known.
type Static struct {
	Settings string
	Catalog  string
	Bundled  string
}

func (s Static) SettingsFile() (string, error) {
	if s.Settings == "" {
		return "", fmt.Errorf("%w: no settings file configured", ErrResolve)
	}
	if err := os.MkdirAll(filepath.Dir(s.Settings), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResolve, err)
	}
	return s.Settings, nil
}

func (s Static) CatalogDir() (string, error) {
	if s.Catalog == "" {
		return "", fmt.Errorf("%w: no language directory configured", ErrResolve)
	}
	if err := os.MkdirAll(s.Catalog, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResolve, err)
	}
	return s.Catalog, nil
}

func (s Static) BundledDir() (string, error) {
	return s.Bundled, nil
}
