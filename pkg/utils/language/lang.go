// package language wraps x/text/language for subtitle and audio track labels.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayName returns the English display name for a BCP-47 code
// (e.g. "pt-BR" → "Brazilian Portuguese"). Unparseable codes are returned
// unchanged so labels never vanish.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// Matches reports whether two BCP-47 codes share a base language
// ("en-US" matches "en-GB").
func Matches(a, b string) bool {
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	baseA, confA := ta.Base()
	baseB, confB := tb.Base()
	if confA == language.No || confB == language.No {
		return strings.EqualFold(a, b)
	}
	return baseA == baseB
}
