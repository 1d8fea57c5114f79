package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
)

// Value is a single normalized CSV cell: null, a number, or a string.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) Float() float64 { return v.num }
func (v Value) Text() string { return v.str }

// Float64 returns the numeric payload and whether v is a number.
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Equals reports whether v is the number f.
func (v Value) Equals(f float64) bool {
	return v.kind == KindNumber && v.num == f
}

// String renders the value for display. Numbers use the shortest
// representation that round-trips; null renders as "null".
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return "null"
	}
}

// NormalizeNumeric trims raw, swaps the first comma for a period and tries a
// float parse. Finite numbers become KindNumber, empty input becomes null and
// anything else is kept as the trimmed original string.
func NormalizeNumeric(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	candidate := strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(candidate, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return String(s)
	}
	return Number(f)
}
