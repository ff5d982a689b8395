package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto requests automatic language detection.
const Auto = "auto"

// English names users commonly type instead of codes.
var byWord = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"mandarin":   "zh",
	"cantonese":  "yue",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
}

// Normalize returns the engine language code for value, or "" for
// automatic detection.
func Normalize(value string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(value))
	if code == "" || code == Auto {
		return "", nil
	}
	if mapped, ok := byWord[code]; ok {
		return mapped, nil
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return "", fmt.Errorf("language %q: %w", value, err)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// DisplayName returns the English name for a normalized code.
// Empty input reports automatic detection.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Auto-detect"
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
