// Package roman converts integers to Roman numerals using classical
// subtractive notation.
package roman

import (
	"strings"
)

const (
	// MinValue is the smallest integer that can be converted.
	MinValue = 1
	// MaxValue is the largest integer representable without repeating a
	// symbol more than three times.
	MaxValue = 3999
)

// Symbol pairs a numeral with the value it denotes.
type Symbol struct {
	Value   int
	Numeral string
}

// symbols must stay strictly descending by value and must fully decompose
// every integer in [MinValue, MaxValue].
var symbols = [...]Symbol{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// Symbols returns a copy of the numeral table in descending value order.
func Symbols() []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols[:])
	return out
}

// Conversion is a single integer together with its numeral.
type Conversion struct {
	Input  int
	Output string
}

// IsValid reports whether n is within the supported range.
func IsValid(n int) bool {
	return n >= MinValue && n <= MaxValue
}

// Convert returns the Roman numeral for n.
func Convert(n int) (string, error) {
	return defaultConverter.Convert(n)
}

// RangeConvert returns the numerals for every integer in [min, max], ordered
// by ascending input.
func RangeConvert(min, max int) ([]Conversion, error) {
	return defaultConverter.RangeConvert(min, max)
}

func toRoman(n int) string {
	var b strings.Builder
	for _, s := range symbols {
		for s.Value <= n {
			n -= s.Value
			b.WriteString(s.Numeral)
		}
	}
	return b.String()
}
