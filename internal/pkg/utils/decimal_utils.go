package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ScaleDown converts an integer amount in base units to human units.
// Example: amount=1234500000000000000, decimals=18 => 1.2345
func ScaleDown(amount decimal.Decimal, decimals int32) decimal.Decimal {
	if decimals == 0 {
		return amount
	}
	return amount.Shift(-decimals)
}

// TrimFractionZeros drops trailing zeros of a fixed-point string and the dot
// when nothing is left after it ("1.2300" => "1.23", "5.000" => "5").
func TrimFractionZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// GroupThousands inserts sep every three digits from the right of an unsigned
// integer string ("1500000" => "1 500 000").
func GroupThousands(digits string, sep rune) string {
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}
