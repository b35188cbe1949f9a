package localization

// BuiltinMetadata describes the synthesized fallback pack.
func BuiltinMetadata() Metadata {
	return Metadata{
		ID:      DefaultCode,
		Version: "1.0.0",
		Author:  "brew team",
	}
}

// Builtin returns the minimal in-memory pack used when no pack file can be
// resolved. It covers the core UI chrome.
func Builtin() Language {
	return Language{
		Metadata: BuiltinMetadata(),
		Translations: map[string]string{
			"app.title":                                   "brew",
			"app.status.no_instances":                     "No instances running",
			"settings.title":                              "Settings",
			"settings.tab.appearance":                     "Appearance",
			"settings.tab.privacy":                        "Privacy",
			"settings.appearance.color_theme":             "Color theme",
			"settings.appearance.color_theme.description": "Select your preferred color theme for brew.",
			"settings.appearance.theme.dark":              "Dark",
			"settings.appearance.theme.light":             "Light",
			"settings.appearance.theme.oled":              "OLED",
			"settings.appearance.theme.sync":              "Sync",
			"settings.appearance.advanced_rendering":      "Advanced rendering",
			"settings.appearance.advanced_rendering_desc": "Enables visual effects such as blur. Disable it on slower hardware.",
			"settings.appearance.language":                "Language",
			"settings.privacy.discord_rpc":                "Discord RPC",
			"settings.privacy.discord_rpc.description":    "Manages the Discord Rich Presence integration. Disabling this will cause brew to no longer show up as an app you are using on your Discord profile.",
			"settings.privacy.discord_rpc.note":           "Note: This will not prevent any instance-specific Discord Rich Presence integrations, such as those added by mods. (app restart required to take effect)",

			"settings.appearance.titlebar_style":             "Titlebar Style",
			"settings.appearance.titlebar_style.description": "Choose how the application window titlebar should look.",
			"settings.appearance.titlebar.custom":            "Custom",
			"settings.appearance.titlebar.native":            "Native",
			"settings.appearance.titlebar.macos":             "macOS",
			"settings.appearance.titlebar.note":              "Note: Changing the titlebar style requires restarting the application.",
			"settings.appearance.titlebar.restart_required":  "The application needs to be restarted to apply the titlebar style change.",
		},
	}
}
