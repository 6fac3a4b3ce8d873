package translation

import "strings"

var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Render flattens a result into a single human-readable text block for
// platforms that want one text blob instead of structured data. One line per
// field, then one line per target language in request order; embedded line
// breaks are collapsed so every logical field stays on one line.
func Render(result *Result) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Author: " + collapseLine(result.Author) + "\n")
	b.WriteString("Language: " + collapseLine(result.DetectedLanguage) + "\n")
	b.WriteString("Original: " + collapseLine(result.OriginalText) + "\n")
	for _, code := range result.Languages {
		b.WriteString("[" + code + "] " + collapseLine(result.Translations[code]) + "\n")
	}
	return strings.TrimRight(b.String(), " \t\n")
}

func collapseLine(value string) string {
	return strings.TrimSpace(lineBreakReplacer.Replace(value))
}
