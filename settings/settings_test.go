package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brew/diag"
)

func TestLoad_MissingFileReturnsDefaultsWithoutCreating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	rec, diags := Load(path)

	assert.Equal(t, Defaults(), rec)
	assert.Empty(t, diags)
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefaults_FullyPopulated(t *testing.T) {
	rec := Defaults()
	assert.Equal(t, ThemeSystem, rec.Theme)
	assert.True(t, rec.DiscordRPC)
	assert.True(t, rec.AdvancedRendering)
	assert.Equal(t, "en_US", rec.Language)
	assert.Equal(t, TitlebarCustom, rec.TitlebarStyle)
	assert.NoError(t, Validate(rec))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"defaults", Defaults()},
		{"dark native", Record{Theme: ThemeDark, DiscordRPC: false, AdvancedRendering: true, Language: "de_DE", TitlebarStyle: TitlebarNative}},
		{"oled macos", Record{Theme: ThemeOLED, DiscordRPC: true, AdvancedRendering: false, Language: "pt-BR", TitlebarStyle: TitlebarMacOS}},
		{"light all off", Record{Theme: ThemeLight, Language: "fr_FR", TitlebarStyle: TitlebarCustom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")

			require.NoError(t, Save(tt.rec, path))
			got, diags := Load(path)

			assert.Empty(t, diags)
			assert.Equal(t, tt.rec, got)
		})
	}
}

func TestSave_WritesEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	rec := Defaults()
	rec.DiscordRPC = false

	require.NoError(t, Save(rec, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, key := range []string{`"theme"`, `"discord_rpc": false`, `"advanced_rendering"`, `"language"`, `"titlebar_style"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	require.NoError(t, Save(Defaults(), path))
	require.NoError(t, Save(Defaults(), path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())
}

func TestLoad_MalformedFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "dark",`), 0o644))

	rec, diags := Load(path)

	assert.Equal(t, Defaults(), rec)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.KindParse, diags[0].Kind)
	assert.Equal(t, path, diags[0].Path)
}

func TestLoad_WrongTypeFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": 3}`), 0o644))

	rec, diags := Load(path)

	assert.Equal(t, Defaults(), rec)
	assert.True(t, diags.Has(diag.KindParse))
}

func TestLoad_MissingFieldsDefaultAndUnknownIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme": "oled", "discord_rpc": false, "window_width": 1280}`), 0o644))

	rec, diags := Load(path)

	assert.Empty(t, diags)
	want := Defaults()
	want.Theme = ThemeOLED
	want.DiscordRPC = false
	assert.Equal(t, want, rec)
}

func TestLoad_InvalidValuesResetPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{"theme": "neon", "discord_rpc": false, "advanced_rendering": false, "language": "../etc", "titlebar_style": "native"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	rec, diags := Load(path)

	assert.Equal(t, ThemeSystem, rec.Theme)
	assert.Equal(t, "en_US", rec.Language)
	assert.Equal(t, TitlebarNative, rec.TitlebarStyle)
	assert.False(t, rec.DiscordRPC)
	assert.False(t, rec.AdvancedRendering)
	assert.Len(t, diags, 2)
	assert.True(t, diags.Has(diag.KindInvalid))
}

func TestLoad_EmptyLanguageDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language": ""}`), 0o644))

	rec, _ := Load(path)
	assert.Equal(t, "en_US", rec.Language)
}

func TestLoad_DirectoryIsReadFailure(t *testing.T) {
	path := t.TempDir()

	rec, diags := Load(path)

	assert.Equal(t, Defaults(), rec)
	assert.True(t, diags.Has(diag.KindRead))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Record)
		wantErr bool
		field   string
	}{
		{"defaults", func(r *Record) {}, false, ""},
		{"bad theme", func(r *Record) { r.Theme = "sepia" }, true, "theme"},
		{"empty theme", func(r *Record) { r.Theme = "" }, true, "theme"},
		{"bad titlebar", func(r *Record) { r.TitlebarStyle = "floating" }, true, "titlebar_style"},
		{"path language", func(r *Record) { r.Language = "en/US" }, true, "language"},
		{"empty language", func(r *Record) { r.Language = "" }, true, "language"},
		{"region language", func(r *Record) { r.Language = "zh_Hant_TW" }, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Defaults()
			tt.mutate(&rec)

			err := Validate(rec)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestRestartRequired(t *testing.T) {
	prev := Defaults()

	next := prev
	next.Theme = ThemeDark
	assert.False(t, RestartRequired(prev, next))

	next = prev
	next.TitlebarStyle = TitlebarNative
	assert.True(t, RestartRequired(prev, next))

	next = prev
	next.DiscordRPC = !prev.DiscordRPC
	assert.True(t, RestartRequired(prev, next))
}
