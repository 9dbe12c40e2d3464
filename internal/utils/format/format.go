// Package format renders numbers for people: pages and emails share it so
// a figure reads the same in both.
package format

import (
	"strconv"
	"strings"
)

// Number formats v with thousands separators and the given decimals.
//
//	Number(1234567.891, 2) == "1,234,567.89"
func Number(v float64, places int) string {
	s := strconv.FormatFloat(v, 'f', places, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(whole[i])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Money formats v as US dollars, sign before the currency symbol.
func Money(v float64, places int) string {
	s := Number(v, places)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-$" + rest
	}
	return "$" + s
}
