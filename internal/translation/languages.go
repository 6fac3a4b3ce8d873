package translation

import (
	"strings"

	"github.com/themultilangtranslator-png/multilang-translator/internal/language"
)

// UnknownLanguage is the sentinel for a detected language that could not be
// normalized to a code.
const UnknownLanguage = "unknown"

// languageNameCodes maps lowercase English language names the provider tends
// to answer with to their ISO 639-1 codes.
var languageNameCodes = map[string]string{
	"arabic":     "ar",
	"chinese":    "zh",
	"dutch":      "nl",
	"english":    "en",
	"farsi":      "fa",
	"french":     "fr",
	"german":     "de",
	"hindi":      "hi",
	"indonesian": "id",
	"italian":    "it",
	"japanese":   "ja",
	"korean":     "ko",
	"persian":    "fa",
	"polish":     "pl",
	"portuguese": "pt",
	"russian":    "ru",
	"spanish":    "es",
	"thai":       "th",
	"turkish":    "tr",
	"ukrainian":  "uk",
	"vietnamese": "vi",
}

// NormalizeDetectedLanguage maps the provider's detected-language answer to a
// 2-3 letter code. Known language names resolve through the table, values that
// already look like a code pass through, and everything else yields an empty
// string so callers can fall back to local detection or the unknown sentinel.
func NormalizeDetectedLanguage(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ""
	}
	if code, ok := languageNameCodes[value]; ok {
		return code
	}
	if normalized := language.NormalizeCode(value); language.IsCodeShaped(normalized) {
		return normalized
	}
	return ""
}

// NormalizeTargetLanguages lowercases and trims each requested code while
// preserving order and duplicates. Blank entries are dropped so an all-blank
// list falls through to the configured defaults.
func NormalizeTargetLanguages(codes []string) []string {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		trimmed := strings.ToLower(strings.TrimSpace(code))
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
