// internal/scoring/normalize.go
package scoring

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, turns every rune that is neither a word
// character nor whitespace into a separator, collapses whitespace runs and
// trims the ends. Idempotent.
func Normalize(text string) string {
	out := make([]rune, 0, len(text))
	pending := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if pending && len(out) > 0 {
				out = append(out, ' ')
			}
			pending = false
			out = append(out, r)
		} else {
			// whitespace and punctuation both act as separators
			pending = true
		}
	}
	return string(out)
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
