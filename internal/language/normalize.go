package language

import "strings"

// NormalizeCode normalizes a language code to its lowercase primary subtag
// (for example, "EN-us" and "en_US" both become "en"). Returns an empty string
// when the value is blank or contains characters outside a-z and separators.
func NormalizeCode(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	primary := trimmed
	if dash := strings.IndexByte(trimmed, '-'); dash >= 0 {
		primary = trimmed[:dash]
	}
	if primary == "" || !isAlphaLower(primary) {
		return ""
	}
	return primary
}

// IsCodeShaped reports whether value already looks like an ISO language code,
// meaning two or three lowercase letters.
func IsCodeShaped(value string) bool {
	if len(value) < 2 || len(value) > 3 {
		return false
	}
	return isAlphaLower(value)
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
