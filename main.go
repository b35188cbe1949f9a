package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"brew/config"
	"brew/diag"
	"brew/localization"
	"brew/logger"
	"brew/settings"
	"brew/state"
	"brew/sysinfo"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	st, err := state.New(cfg.Resolver())
	if err != nil {
		logger.Fatal("cannot establish a persistence location", zap.Error(err))
	}
	if st.FirstRun() {
		seedFirstRun(st, cfg.DetectLanguage)
	}

	rec, _ := st.Snapshot()

	a := app.NewWithID(cfg.AppID)
	sh := &shell{app: a, state: st}
	sh.window = newWindow(a, rec.TitlebarStyle)
	sh.window.Resize(fyne.NewSize(560, 520))
	sh.applyTheme(rec.Theme)
	sh.refresh()
	sh.window.ShowAndRun()
}

// seedFirstRun writes the initial settings file, switching to the installed
// pack that matches the OS locale when enabled.
func seedFirstRun(st *state.State, detect bool) {
	rec, err := st.GetSettings()
	if err != nil {
		logger.Error("read settings", zap.Error(err))
		return
	}
	if detect {
		if code := localization.DetectSystemLanguage(st.ListLanguages()); code != rec.Language {
			logger.Info("using system language", zap.String("language", code))
			rec.Language = code
		}
	}
	if err := st.UpdateSettings(rec); err != nil {
		logger.Error("write initial settings", zap.Error(err))
	}
}

// newWindow opens a borderless window for the custom chromes; the header
// then carries the close button.
func newWindow(a fyne.App, style settings.TitlebarStyle) fyne.Window {
	if style != settings.TitlebarNative {
		if drv, ok := a.Driver().(desktop.Driver); ok {
			return drv.CreateSplashWindow()
		}
	}
	return a.NewWindow("brew")
}

type shell struct {
	app       fyne.App
	window    fyne.Window
	state     *state.State
	languages []string
	notes     []string
}

// refresh rescans the installed packs, gathers pending diagnostics and
// redraws. Listing comes first so its diagnostics show in the same redraw.
func (sh *shell) refresh() {
	var codes []string
	for _, m := range sh.state.ListLanguages() {
		codes = append(codes, m.ID)
	}
	sh.languages = codes
	sh.collectDiagnostics()
	sh.render()
}

func (sh *shell) render() {
	rec, lang := sh.state.Snapshot()
	sh.window.SetTitle(lang.T("app.title"))

	header := container.NewHBox(widget.NewLabelWithStyle(lang.T("app.title"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	if rec.TitlebarStyle != settings.TitlebarNative {
		header.Add(widget.NewButtonWithIcon("", theme.CancelIcon(), sh.app.Quit))
	}

	content := container.NewVBox(
		header,
		widget.NewLabel(lang.T("app.status.no_instances")),
		widget.NewCard(lang.T("settings.tab.appearance"), "", sh.appearance(rec, lang)),
		widget.NewCard(lang.T("settings.tab.privacy"), "", sh.privacy(rec, lang)),
		widget.NewLabel(systemLine()),
	)
	if len(sh.notes) > 0 {
		notes := widget.NewLabel(strings.Join(sh.notes, "\n"))
		notes.Wrapping = fyne.TextWrapWord
		content.Add(notes)
	}

	sh.window.SetContent(container.NewVScroll(content))
}

func (sh *shell) appearance(rec settings.Record, lang localization.Language) fyne.CanvasObject {
	themes := choices{
		{string(settings.ThemeSystem), lang.T("settings.appearance.theme.sync")},
		{string(settings.ThemeLight), lang.T("settings.appearance.theme.light")},
		{string(settings.ThemeDark), lang.T("settings.appearance.theme.dark")},
		{string(settings.ThemeOLED), lang.T("settings.appearance.theme.oled")},
	}
	themeSelect := widget.NewSelect(themes.labels(), nil)
	themeSelect.Selected = themes.label(string(rec.Theme))
	themeSelect.OnChanged = func(label string) {
		sh.update(func(r *settings.Record) { r.Theme = settings.Theme(themes.value(label)) })
	}

	titlebars := choices{
		{string(settings.TitlebarCustom), lang.T("settings.appearance.titlebar.custom")},
		{string(settings.TitlebarNative), lang.T("settings.appearance.titlebar.native")},
		{string(settings.TitlebarMacOS), lang.T("settings.appearance.titlebar.macos")},
	}
	titlebarSelect := widget.NewSelect(titlebars.labels(), nil)
	titlebarSelect.Selected = titlebars.label(string(rec.TitlebarStyle))
	titlebarSelect.OnChanged = func(label string) {
		sh.update(func(r *settings.Record) { r.TitlebarStyle = settings.TitlebarStyle(titlebars.value(label)) })
	}

	rendering := widget.NewCheck(lang.T("settings.appearance.advanced_rendering"), nil)
	rendering.Checked = rec.AdvancedRendering
	rendering.OnChanged = func(on bool) {
		sh.update(func(r *settings.Record) { r.AdvancedRendering = on })
	}

	langSelect := widget.NewSelect(sh.languages, nil)
	langSelect.Selected = rec.Language
	langSelect.OnChanged = sh.changeLanguage

	return widget.NewForm(
		widget.NewFormItem(lang.T("settings.appearance.color_theme"), themeSelect),
		widget.NewFormItem(lang.T("settings.appearance.titlebar_style"), titlebarSelect),
		widget.NewFormItem("", rendering),
		widget.NewFormItem(lang.T("settings.appearance.language"), langSelect),
	)
}

func (sh *shell) privacy(rec settings.Record, lang localization.Language) fyne.CanvasObject {
	presence := widget.NewCheck(lang.T("settings.privacy.discord_rpc"), nil)
	presence.Checked = rec.DiscordRPC
	presence.OnChanged = func(on bool) {
		sh.update(func(r *settings.Record) { r.DiscordRPC = on })
	}

	note := widget.NewLabel(lang.T("settings.privacy.discord_rpc.note"))
	note.Wrapping = fyne.TextWrapWord
	return container.NewVBox(presence, note)
}

func (sh *shell) update(mutate func(*settings.Record)) {
	prev, err := sh.state.GetSettings()
	if err != nil {
		dialog.ShowError(err, sh.window)
		return
	}
	next := prev
	mutate(&next)

	if err := sh.state.UpdateSettings(next); err != nil {
		dialog.ShowError(err, sh.window)
	}
	if next.Theme != prev.Theme {
		sh.applyTheme(next.Theme)
	}
	sh.refresh()

	if settings.RestartRequired(prev, next) {
		lang := sh.state.GetTranslations()
		msg := lang.T("settings.appearance.titlebar.restart_required")
		if next.TitlebarStyle == prev.TitlebarStyle {
			msg = lang.T("settings.privacy.discord_rpc.note")
		}
		dialog.ShowInformation(lang.T("settings.title"), msg, sh.window)
	}
}

func (sh *shell) changeLanguage(code string) {
	if _, err := sh.state.ChangeLanguage(code); err != nil {
		dialog.ShowError(err, sh.window)
	}
	sh.refresh()
}

func (sh *shell) collectDiagnostics() {
	sh.notes = sh.notes[:0]
	for _, d := range sh.state.TakeDiagnostics() {
		// Fallback notices without a file are expected, not worth showing.
		if d.Kind == diag.KindMissing && d.Path == "" {
			continue
		}
		sh.notes = append(sh.notes, d.String())
	}
}

func (sh *shell) applyTheme(t settings.Theme) {
	switch t {
	case settings.ThemeLight:
		sh.app.Settings().SetTheme(&fixedTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	case settings.ThemeDark:
		sh.app.Settings().SetTheme(&fixedTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	case settings.ThemeOLED:
		sh.app.Settings().SetTheme(&fixedTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark, black: true})
	default:
		sh.app.Settings().SetTheme(theme.DefaultTheme())
	}
}

// fixedTheme pins the default theme to one variant regardless of the OS.
type fixedTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
	black   bool
}

func (f *fixedTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if f.black && (name == theme.ColorNameBackground || name == theme.ColorNameOverlayBackground) {
		return color.Black
	}
	return f.Theme.Color(name, f.variant)
}

func systemLine() string {
	info := sysinfo.Get()
	return fmt.Sprintf("%s %s · brew %s", info.OS, info.Version, Version)
}

// choices maps stored values to their localized labels.
type choices [][2]string

func (c choices) labels() []string {
	out := make([]string, 0, len(c))
	for _, ch := range c {
		out = append(out, ch[1])
	}
	return out
}

func (c choices) label(value string) string {
	for _, ch := range c {
		if ch[0] == value {
			return ch[1]
		}
	}
	return ""
}

func (c choices) value(label string) string {
	for _, ch := range c {
		if ch[1] == label {
			return ch[0]
		}
	}
	return ""
}
