// Package sanitize cleans user-provided record values before they are scored
// and echoed back in issue messages.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	entities   = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
	)
)

// StripHTML removes markup, including tags hidden behind HTML entities.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = entities.Replace(s)
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Text strips markup, drops control characters and collapses runs of
// whitespace to a single space.
func Text(s string) string {
	s = StripHTML(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Values returns a copy of values with every entry passed through Text.
func Values(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = Text(value)
	}
	return out
}
