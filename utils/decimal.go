package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLooseDecimal accepts common user-formatted numeric strings like:
// - "20,000"
// - "INR 20,000"
// - "Rs -20,000"
//
// Keep digits, '.', and a leading '-' only. Anything that still fails to
// parse degrades to zero with ok=false; editing surfaces feed raw field
// values through here so a transient empty/garbage input never corrupts a
// stored total.
func ParseLooseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s != "" {
		s = strings.ReplaceAll(s, ",", "")
	}
	// A '-' ahead of the first digit marks a negative value even when a
	// currency label precedes it ("Rs -20,000").
	neg := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			break
		}
		if r == '-' {
			neg = true
			break
		}
	}
	// Strip everything except digits and '.'.
	var b strings.Builder
	b.Grow(len(s) + 1)
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return decimal.Zero, false
	}
	if neg {
		clean = "-" + clean
	}

	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return val, true
}

// FormatGrouped renders a decimal with thousands separators and the given
// number of fraction digits. places < 0 keeps the value's own exponent
// (no forced two-decimal rounding).
func FormatGrouped(d decimal.Decimal, places int) string {
	var s string
	if places >= 0 {
		s = d.StringFixed(int32(places))
	} else {
		s = d.String()
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i:]
	}
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}
	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
