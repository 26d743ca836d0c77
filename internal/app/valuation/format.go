package valuation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"
)

const notAvailable = "N/A"

// FormatTokenBalance renders a human-unit balance for display: 8 decimals for
// SOL and ETH, 4 otherwise, trailing zeros trimmed but never fewer than two
// decimals on a fractional value. Dust that would round to "0" keeps the full
// precision.
func FormatTokenBalance(balance float64, symbol string) string {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return "0"
	}
	places := 4
	if symbol == entity.SymbolSOL || symbol == entity.SymbolETH {
		places = 8
	}

	formatted := utils.TrimFractionZeros(strconv.FormatFloat(balance, 'f', places, 64))
	if dot := strings.IndexByte(formatted, '.'); dot >= 0 && len(formatted)-dot-1 < 2 {
		formatted = strconv.FormatFloat(balance, 'f', 2, 64)
	}
	if !strings.Contains(formatted, ".") && balance != 0 && math.Abs(balance) < 0.01 {
		formatted = strconv.FormatFloat(balance, 'f', places, 64)
	}
	return formatted
}

// FormatLargeNumber abbreviates with K, M, B or T suffixes.
func FormatLargeNumber(n float64) string {
	switch {
	case n >= 1e12:
		return strconv.FormatFloat(n/1e12, 'f', 2, 64) + "T"
	case n >= 1e9:
		return strconv.FormatFloat(n/1e9, 'f', 2, 64) + "B"
	case n >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 2, 64) + "M"
	case n >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 2, 64) + "K"
	default:
		return strconv.FormatFloat(n, 'f', 2, 64)
	}
}

// FormatCSVNumber renders a number without exponent notation. Precision grows
// as the magnitude shrinks; from 1000 upward the integer part is grouped by
// spaces and a comma separates the two decimals ("1 500 000,50").
func FormatCSVNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	abs := math.Abs(v)
	switch {
	case abs < 0.000001:
		return strconv.FormatFloat(v, 'f', 12, 64)
	case abs < 0.01:
		return strconv.FormatFloat(v, 'f', 8, 64)
	case abs < 1:
		return strconv.FormatFloat(v, 'f', 6, 64)
	case abs < 1000:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}

	intPart, fracPart, _ := strings.Cut(strconv.FormatFloat(abs, 'f', 2, 64), ".")
	if fracPart == "" {
		fracPart = "00"
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + utils.GroupThousands(intPart, ' ') + "," + fracPart
}

// ExportFileName is the download name of the CSV export for the given day.
func ExportFileName(t time.Time) string {
	return "crypto_portfolio_" + t.UTC().Format(time.DateOnly) + ".csv"
}
