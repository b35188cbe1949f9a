// Package state holds the process-wide settings record and active language
// and serves the shell's request/response commands against them.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"brew/diag"
	"brew/localization"
	"brew/logger"
	"brew/paths"
	"brew/settings"
)

// ErrInvalidLanguageCode is returned by ChangeLanguage for codes that cannot
// name a pack.
var ErrInvalidLanguageCode = errors.New("invalid language code")

// State is the shared container behind every settings and language command.
// It owns its records; callers only ever receive copies.
type State struct {
	resolver paths.Resolver
	catalog  localization.Catalog
	firstRun bool

	// mu guards settings and language as one pair. Every operation that
	// touches either holds it for its whole duration, file writes included,
	// so settings.Language and the active pack can never drift apart.
	mu       sync.Mutex
	settings settings.Record
	language localization.Language

	pathMu       sync.Mutex
	settingsPath string

	diagMu sync.Mutex
	diags  diag.List
}

// New runs the startup load sequence: resolve locations, install missing
// bundled packs, load settings, then load the configured language. Only a
// failure to resolve the settings or catalog location is returned.
func New(resolver paths.Resolver) (*State, error) {
	path, err := resolver.SettingsFile()
	if err != nil {
		return nil, fmt.Errorf("resolve settings file: %w", err)
	}
	catalogDir, err := resolver.CatalogDir()
	if err != nil {
		return nil, fmt.Errorf("resolve language directory: %w", err)
	}

	var diags diag.List
	bundledDir, err := resolver.BundledDir()
	if err != nil {
		diags.Add(diag.KindMissing, "", "bundled resources unavailable, continuing without them", err)
		bundledDir = ""
	}

	catalog := localization.Catalog{Dir: catalogDir, BundledDir: bundledDir}
	_, installDiags := catalog.InstallBundled()
	diags.Extend(installDiags)

	_, statErr := os.Stat(path)
	firstRun := errors.Is(statErr, fs.ErrNotExist)

	rec, loadDiags := settings.Load(path)
	diags.Extend(loadDiags)

	lang, langDiags := catalog.Load(rec.Language)
	diags.Extend(langDiags)

	logger.Info("application state initialized",
		zap.String("settings", path),
		zap.String("language", rec.Language),
		zap.String("resolved_language", lang.Metadata.ID),
		zap.Bool("first_run", firstRun),
	)

	return &State{
		resolver:     resolver,
		catalog:      catalog,
		firstRun:     firstRun,
		settings:     rec,
		language:     lang,
		settingsPath: path,
		diags:        diags,
	}, nil
}

// NewWithRecords builds a State around already loaded records. The settings
// path is resolved on first use.
func NewWithRecords(resolver paths.Resolver, catalog localization.Catalog, rec settings.Record, lang localization.Language) *State {
	return &State{
		resolver: resolver,
		catalog:  catalog,
		settings: rec,
		language: lang.Clone(),
	}
}

// FirstRun reports whether no settings file existed at startup.
func (s *State) FirstRun() bool {
	return s.firstRun
}

// path returns the settings file path, resolving and caching it on first use.
func (s *State) path() (string, error) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()

	if s.settingsPath != "" {
		return s.settingsPath, nil
	}
	p, err := s.resolver.SettingsFile()
	if err != nil {
		return "", fmt.Errorf("resolve settings file: %w", err)
	}
	s.settingsPath = p
	return p, nil
}

// SettingsPath returns the resolved settings file path, if known.
func (s *State) SettingsPath() (string, bool) {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	return s.settingsPath, s.settingsPath != ""
}

// GetSettings returns a copy of the current settings. It resolves the
// settings path on first call and never touches the disk afterwards.
func (s *State) GetSettings() (settings.Record, error) {
	if _, err := s.path(); err != nil {
		return settings.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

// GetTranslations returns a copy of the active language.
func (s *State) GetTranslations() localization.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language.Clone()
}

// Snapshot returns the settings and the active language as one consistent pair.
func (s *State) Snapshot() (settings.Record, localization.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, s.language.Clone()
}

// UpdateSettings replaces the settings record and writes it through. When
// the language code changes the active pack is re-resolved first. Invalid
// records are rejected untouched. A write failure is returned, but the
// in-memory record keeps the new value so the caller can retry.
func (s *State) UpdateSettings(next settings.Record) error {
	if err := settings.Validate(next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.settings
	if next.Language != prev.Language {
		lang, diags := s.catalog.Load(next.Language)
		s.language = lang
		s.addDiagnostics(diags)
	}
	s.settings = next

	if prev.TitlebarStyle != next.TitlebarStyle {
		// Applied on next start
		logger.Info("titlebar style changed", zap.String("titlebar_style", string(next.TitlebarStyle)))
	}

	return s.persistLocked()
}

// ChangeLanguage resolves code through the fallback chain, makes the result
// the active language and stores code in the settings. The returned pack may
// describe en_US or the built-in defaults when code is unavailable. A write
// failure is returned together with the committed pack.
func (s *State) ChangeLanguage(code string) (localization.Language, error) {
	if !localization.ValidCode(code) {
		return localization.Language{}, fmt.Errorf("%w: %q", ErrInvalidLanguageCode, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lang, diags := s.catalog.Load(code)
	s.addDiagnostics(diags)

	s.language = lang
	s.settings.Language = code

	return lang.Clone(), s.persistLocked()
}

// ListLanguages returns the metadata of every available pack.
func (s *State) ListLanguages() []localization.Metadata {
	metas, diags := s.catalog.List()
	s.addDiagnostics(diags)
	return metas
}

// TakeDiagnostics returns and clears the diagnostics gathered so far.
func (s *State) TakeDiagnostics() diag.List {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	out := s.diags
	s.diags = nil
	return out
}

func (s *State) addDiagnostics(diags diag.List) {
	if len(diags) == 0 {
		return
	}
	s.diagMu.Lock()
	s.diags = append(s.diags, diags...)
	s.diagMu.Unlock()
}

// persistLocked writes the settings record. Callers hold s.mu.
func (s *State) persistLocked() error {
	path, err := s.path()
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := settings.Save(s.settings, path); err != nil {
		logger.Error("settings write failed", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
