// Package numparse converts locale-ambiguous numeric substrings into decimal
// values. Scandinavian invoices write "9 969,00", Anglo ones "9,969.00"; the
// same rule handles both without locale configuration: whichever of comma and
// dot occurs later in the string is the decimal point, the other is a
// thousands separator.
package numparse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount parses a numeric-looking substring. Internal whitespace (including
// non-breaking spaces) is removed. A lone comma is a decimal point, a lone
// dot is a decimal point, and with both present the rightmost wins.
// Returns false for anything that does not reduce to a number.
func Amount(s string) (decimal.Decimal, bool) {
	s = stripSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// the last comma is the decimal point, every other comma and
			// all dots are grouping
			s = s[:lastComma] + "\x00" + s[lastComma+1:]
			s = strings.ReplaceAll(s, ",", "")
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, "\x00", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// only commas: the last one is the decimal point
		if strings.Count(s, ",") > 1 {
			s = s[:lastComma] + "\x00" + s[lastComma+1:]
			s = strings.ReplaceAll(s, ",", "")
			s = strings.Replace(s, "\x00", ".", 1)
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		// only dots, several of them: the last is the decimal point
		s = s[:lastDot] + "\x00" + s[lastDot+1:]
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, "\x00", ".", 1)
	default:
		// zero or one dot: already canonical
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// DigitCount returns how many decimal digits the token contains, used to
// filter account/KID/phone numbers from monetary candidates.
func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func stripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', ' ', ' ', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
