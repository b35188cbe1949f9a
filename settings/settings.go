package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"brew/diag"
	"brew/localization"
	"brew/paths"
)

// Theme represents the color theme setting
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeOLED   Theme = "oled"
)

// TitlebarStyle represents the window chrome setting
type TitlebarStyle string

const (
	TitlebarNative TitlebarStyle = "native"
	TitlebarCustom TitlebarStyle = "custom"
	TitlebarMacOS  TitlebarStyle = "macos"
)

// ErrInvalid is wrapped by every ValidationError.
var ErrInvalid = errors.New("invalid settings")

// Record holds all persistent application settings
type Record struct {
	Theme Theme `json:"theme" validate:"required,oneof=system light dark oled"`

	// Rich presence integration
	DiscordRPC bool `json:"discord_rpc"`

	AdvancedRendering bool `json:"advanced_rendering"`

	// Interface language code, e.g. en_US
	Language string `json:"language" validate:"required,langcode"`

	TitlebarStyle TitlebarStyle `json:"titlebar_style" validate:"required,oneof=native custom macos"`
}

// Defaults returns the default settings record
func Defaults() Record {
	return Record{
		Theme:             ThemeSystem,
		DiscordRPC:        true,
		AdvancedRendering: true,
		Language:          localization.DefaultCode,
		TitlebarStyle:     TitlebarCustom,
	}
}

// RestartRequired reports whether moving from prev to next changes a
// setting that only takes effect after the application restarts.
func RestartRequired(prev, next Record) bool {
	return prev.TitlebarStyle != next.TitlebarStyle || prev.DiscordRPC != next.DiscordRPC
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("langcode", func(fl validator.FieldLevel) bool {
		return localization.ValidCode(fl.Field().String())
	})
	return v
}

// ValidationError lists the offending fields of a rejected record, keyed by
// their on-disk names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid settings: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks every field of rec. The returned error, if any, is a
// *ValidationError.
func Validate(rec Record) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "langcode":
		return fmt.Sprintf("%q is not a language code", fe.Value())
	default:
		return "failed " + fe.Tag()
	}
}

// Load reads the settings record at path. A missing file yields defaults
// without creating it. An unreadable or malformed file also yields defaults,
// with a diagnostic; fields holding invalid values are reset individually.
func Load(path string) (Record, diag.List) {
	var diags diag.List

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// No settings file yet, use defaults
			return Defaults(), nil
		}
		diags.Add(diag.KindRead, path, "settings file unreadable, using defaults", err)
		return Defaults(), diags
	}

	rec := Defaults()
	if err := json.Unmarshal(data, &rec); err != nil {
		diags.Add(diag.KindParse, path, "settings file malformed, using defaults", err)
		return Defaults(), diags
	}

	return sanitize(rec, path, &diags), diags
}

// sanitize resets each invalid field to its default.
func sanitize(rec Record, path string, diags *diag.List) Record {
	err := Validate(rec)
	if err == nil {
		return rec
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		diags.Add(diag.KindInvalid, path, "settings validation failed, using defaults", err)
		return Defaults()
	}

	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	def := Defaults()
	for _, field := range fields {
		switch field {
		case "theme":
			rec.Theme = def.Theme
		case "language":
			rec.Language = def.Language
		case "titlebar_style":
			rec.TitlebarStyle = def.TitlebarStyle
		}
		diags.Add(diag.KindInvalid, path, "settings field reset to default",
			fmt.Errorf("%s %s", field, verr.Fields[field]))
	}
	return rec
}

// Save writes the full record to path, creating parent directories. The file
// is replaced atomically.
func Save(rec Record, path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := paths.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
