package render

import (
	"math"
	"strconv"
	"strings"
)

// exactDigits covers every fractional digit a float64 can carry.
const exactDigits = 1074

// Fixed formats f with digits decimals, rounding exact halves away from
// zero. fmt's %.Nf rounds them to even, so 2.25 would print as 2.2.
func Fixed(f float64, digits int) string {
	digits = min(max(digits, 0), 100)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', digits, 64)
	}
	exact := strconv.FormatFloat(math.Abs(f), 'f', exactDigits, 64)
	intPart, frac, _ := strings.Cut(exact, ".")
	n := intPart + frac[:digits]
	if frac[digits] >= '5' {
		n = increment(n)
	}
	var b strings.Builder
	if f < 0 {
		b.WriteByte('-')
	}
	b.WriteString(n[:len(n)-digits])
	if digits > 0 {
		b.WriteByte('.')
		b.WriteString(n[len(n)-digits:])
	}
	return b.String()
}

// increment adds one to a string of decimal digits.
func increment(n string) string {
	b := []byte(n)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}
