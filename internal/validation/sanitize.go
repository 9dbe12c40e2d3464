package validation

import (
	"strings"
	"unicode"
)

// Text trims s, drops control characters and collapses runs of spaces
// and tabs. Newlines survive so multi-line messages keep their shape.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == '\n':
			b.WriteRune(r)
			space = false
		case r == '\r':
		case r == ' ' || r == '\t':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

// Line is Text for single-line fields: newlines become spaces.
func Line(s string) string {
	return Text(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
}

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
