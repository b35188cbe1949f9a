package localization

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"brew/diag"
	"brew/logger"
	"brew/paths"
)

const packExt = ".json"

// PackPath returns the file holding the pack for code inside dir.
func PackPath(dir, code string) string {
	return filepath.Join(dir, code+packExt)
}

// fallbackChain lists the codes tried by Load, at most two.
func fallbackChain(code string) []string {
	if code == DefaultCode {
		return []string{DefaultCode}
	}
	return []string{code, DefaultCode}
}

// Load resolves the pack for code in catalogDir. It never fails:
//   - an existing, well-formed pack is returned as is;
//   - an existing but unreadable or malformed pack yields Builtin directly;
//   - a missing pack falls back to DefaultCode once, then to Builtin.
func Load(catalogDir, code string) (Language, diag.List) {
	var diags diag.List

	for _, candidate := range fallbackChain(code) {
		if !ValidCode(candidate) {
			diags.Add(diag.KindInvalid, "", fmt.Sprintf("language code %q is not valid", candidate), nil)
			continue
		}

		path := PackPath(catalogDir, candidate)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			diags.Add(diag.KindMissing, path, fmt.Sprintf("language %s not found", candidate), nil)
			continue
		}
		if err != nil {
			diags.Add(diag.KindRead, path, "language pack unreadable, using built-in defaults", err)
			return Builtin(), diags
		}

		lang, err := decodePack(data, candidate)
		if err != nil {
			diags.Add(diag.KindParse, path, "language pack malformed, using built-in defaults", err)
			return Builtin(), diags
		}
		logger.Debug("language resolved", zap.String("requested", code), zap.String("language", candidate))
		return lang, diags
	}

	diags.Add(diag.KindMissing, "", "no language pack found, using built-in defaults", nil)
	return Builtin(), diags
}

// ListAvailable returns the metadata of every well-formed pack in catalogDir,
// in directory order. When catalogDir yields nothing, bundledDir is scanned
// the same way; when that is empty too, the built-in pack is listed alone.
func ListAvailable(catalogDir, bundledDir string) ([]Metadata, diag.List) {
	var diags diag.List

	metas := scanDir(catalogDir, &diags)
	if len(metas) == 0 && bundledDir != "" {
		metas = scanDir(bundledDir, &diags)
	}
	if len(metas) == 0 {
		metas = []Metadata{BuiltinMetadata()}
	}
	return metas, diags
}

func scanDir(dir string, diags *diag.List) []Metadata {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			diags.Add(diag.KindMissing, dir, "language directory not found", nil)
		} else {
			diags.Add(diag.KindRead, dir, "language directory unreadable", err)
		}
		return nil
	}

	var metas []Metadata
	for _, entry := range entries {
		code, ok := packCode(entry)
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			diags.Add(diag.KindRead, path, "language pack unreadable, skipped", err)
			continue
		}
		lang, err := decodePack(data, code)
		if err != nil {
			diags.Add(diag.KindParse, path, "language pack malformed, skipped", err)
			continue
		}
		metas = append(metas, lang.Metadata)
	}
	return metas
}

// packCode reports the language code of a pack file entry.
func packCode(entry fs.DirEntry) (string, bool) {
	name := entry.Name()
	if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != packExt {
		return "", false
	}
	return strings.TrimSuffix(name, packExt), true
}

// EnsureBundledPacksInstalled copies every pack in bundledDir that is absent
// from catalogDir, byte for byte. Packs already present are never touched,
// so running it again changes nothing. It returns the installed file names.
// A missing bundled directory is not an error: the catalog keeps what it has.
func EnsureBundledPacksInstalled(catalogDir, bundledDir string) ([]string, diag.List) {
	var diags diag.List

	entries, err := os.ReadDir(bundledDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			diags.Add(diag.KindMissing, bundledDir, "bundled language directory not found", nil)
		} else {
			diags.Add(diag.KindRead, bundledDir, "bundled language directory unreadable", err)
		}
		return nil, diags
	}

	if err := os.MkdirAll(catalogDir, 0o755); err != nil {
		diags.Add(diag.KindCopy, catalogDir, "cannot create language directory", err)
		return nil, diags
	}

	var installed []string
	for _, entry := range entries {
		if _, ok := packCode(entry); !ok {
			continue
		}
		name := entry.Name()
		dest := filepath.Join(catalogDir, name)

		if _, err := os.Lstat(dest); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			diags.Add(diag.KindRead, dest, "cannot inspect installed language pack, skipped", err)
			continue
		}

		src := filepath.Join(bundledDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			diags.Add(diag.KindRead, src, "bundled language pack unreadable, skipped", err)
			continue
		}
		if err := paths.WriteAtomic(dest, data, 0o644); err != nil {
			diags.Add(diag.KindCopy, dest, "cannot install bundled language pack", err)
			continue
		}

		logger.Info("installed bundled language pack", zap.String("path", dest))
		installed = append(installed, name)
	}
	return installed, diags
}

// Catalog binds the installed and bundled pack directories.
type Catalog struct {
	Dir        string
	BundledDir string
}

// Load resolves code against the installed directory.
func (c Catalog) Load(code string) (Language, diag.List) {
	return Load(c.Dir, code)
}

// List returns the metadata of the available packs.
func (c Catalog) List() ([]Metadata, diag.List) {
	return ListAvailable(c.Dir, c.BundledDir)
}

// InstallBundled copies missing bundled packs into the installed directory.
func (c Catalog) InstallBundled() ([]string, diag.List) {
	if c.BundledDir == "" {
		return nil, nil
	}
	return EnsureBundledPacksInstalled(c.Dir, c.BundledDir)
}
