package localization

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// DefaultCode is the fallback language. It always resolves to some pack,
// synthesized in memory when no file exists.
const DefaultCode = "en_US"

const metadataKey = "metadata"

// Metadata identifies one installed language pack.
type Metadata struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Author  string `json:"author"`
}

// Language is a full pack: its metadata plus dot-delimited translation keys.
// On disk the metadata object sits next to the translation entries:
//
//	{"metadata": {"id": "en_US", ...}, "app.title": "brew", ...}
type Language struct {
	Metadata     Metadata
	Translations map[string]string
}

var codePattern = regexp.MustCompile(`^[A-Za-z]{2,3}(?:[_-][A-Za-z0-9]{1,8})*$`)

// ValidCode reports whether code looks like a language/region code such as
// en_US or pt-BR. Valid codes never contain path separators.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// T returns the text for key, formatted with args when given. Unknown keys
// return the key itself so nothing is silently swallowed.
func (l Language) T(key string, args ...any) string {
	text, ok := l.Translations[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// Clone returns a deep copy, so callers never share the map with the holder.
func (l Language) Clone() Language {
	out := Language{Metadata: l.Metadata, Translations: make(map[string]string, len(l.Translations))}
	for k, v := range l.Translations {
		out.Translations[k] = v
	}
	return out
}

func (l Language) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(l.Translations)+1)
	for k, v := range l.Translations {
		m[k] = v
	}
	m[metadataKey] = l.Metadata
	return json.Marshal(m)
}

func (l *Language) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("language pack is not an object")
	}

	metaRaw, ok := raw[metadataKey]
	if !ok {
		return errors.New("language pack has no metadata")
	}
	meta, err := decodeMetadata(metaRaw)
	if err != nil {
		return err
	}

	translations := make(map[string]string, len(raw)-1)
	for key, value := range raw {
		if key == metadataKey {
			continue
		}
		var text *string
		if err := json.Unmarshal(value, &text); err != nil || text == nil {
			return fmt.Errorf("translation %q: value must be a string", key)
		}
		translations[key] = *text
	}

	l.Metadata = meta
	l.Translations = translations
	return nil
}

func decodeMetadata(data json.RawMessage) (Metadata, error) {
	var m struct {
		ID      *string `json:"id"`
		Version *string `json:"version"`
		Author  *string `json:"author"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("metadata: %w", err)
	}
	switch {
	case m.ID == nil:
		return Metadata{}, errors.New("metadata: missing id")
	case m.Version == nil:
		return Metadata{}, errors.New("metadata: missing version")
	case m.Author == nil:
		return Metadata{}, errors.New("metadata: missing author")
	}
	return Metadata{ID: *m.ID, Version: *m.Version, Author: *m.Author}, nil
}

// decodePack parses a pack file and checks that it describes code.
func decodePack(data []byte, code string) (Language, error) {
	var lang Language
	if err := json.Unmarshal(data, &lang); err != nil {
		return Language{}, err
	}
	if lang.Metadata.ID != code {
		return Language{}, fmt.Errorf("metadata id %q does not match file code %q", lang.Metadata.ID, code)
	}
	return lang, nil
}
