package localization

import (
	"strings"

	locale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// DetectSystemLanguage returns the code of the available pack that best
// matches the OS locale list, or DefaultCode when none does.
func DetectSystemLanguage(available []Metadata) string {
	locales, err := locale.GetLocales()
	if err != nil {
		return DefaultCode
	}
	return MatchLocales(locales, available)
}

// MatchLocales picks the available pack best matching the preferred locales,
// given in priority order as BCP 47 tags or POSIX names (fr_FR.UTF-8).
func MatchLocales(preferred []string, available []Metadata) string {
	var (
		supported []language.Tag
		codes     []string
	)
	for _, m := range available {
		tag, err := language.Parse(toBCP47(m.ID))
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		codes = append(codes, m.ID)
	}
	if len(supported) == 0 {
		return DefaultCode
	}

	var wanted []language.Tag
	for _, p := range preferred {
		tag, err := language.Parse(toBCP47(p))
		if err != nil {
			continue
		}
		wanted = append(wanted, tag)
	}
	if len(wanted) == 0 {
		return DefaultCode
	}

	_, idx, conf := language.NewMatcher(supported).Match(wanted...)
	if conf == language.No || idx < 0 || idx >= len(codes) {
		return DefaultCode
	}
	return codes[idx]
}

func toBCP47(code string) string {
	if i := strings.IndexAny(code, ".@"); i >= 0 {
		code = code[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
}
