package valuation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"portfolio_dashboard/internal/domain/entity"
)

var csvHeader = []string{
	"Symbole",
	"Nom",
	"Type",
	"Balance",
	"Valeur (USD)",
	"Prix actuel (USD)",
	"Variation 24h (%)",
	"Variation 24h (USD)",
	"% du Portfolio",
	"Wallets",
}

// ExportCSV writes the token table as semicolon-separated CSV. total is the
// portfolio total used for the "% du Portfolio" column.
func (e *Engine) ExportCSV(w io.Writer, tokens []entity.AggregatedToken, total float64) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range tokens {
		if err := writer.Write(e.csvRecord(t, total)); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", t.Symbol, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func (e *Engine) csvRecord(t entity.AggregatedToken, total float64) []string {
	balance := t.Balance.InexactFloat64()
	value := e.TokenValue(t)

	var formattedBalance string
	if t.Type == entity.TokenTypeNative && t.Symbol == entity.SymbolSOL {
		formattedBalance = FormatTokenBalance(balance, t.Symbol)
	} else {
		formattedBalance = FormatCSVNumber(balance) + " " + t.Symbol
	}

	price := notAvailable
	if p := t.Price(); p != 0 {
		price = FormatCSVNumber(p)
	}

	change := notAvailable
	usdChange := notAvailable
	if md := t.MarketData; md != nil {
		if md.PercentChange24h != nil {
			change = signPrefix(*md.PercentChange24h) + FormatCSVNumber(*md.PercentChange24h)
		}
		if md.USDChange24h != nil {
			usdChange = signOf(*md.USDChange24h) + FormatCSVNumber(math.Abs(*md.USDChange24h))
		}
	}

	name := t.Name
	if name == "" {
		name = "Token"
	}
	wallets := "0"
	if len(t.Wallets) > 0 {
		wallets = strings.Join(t.Wallets, ", ")
	}

	return []string{
		t.Symbol,
		name,
		string(t.Type),
		formattedBalance,
		FormatCSVNumber(value),
		price,
		change,
		usdChange,
		formatShare(Percentage(value, total)),
		wallets,
	}
}

func formatShare(p float64) string {
	switch {
	case p > 0.01:
		return FormatCSVNumber(p)
	case p > 0:
		return "< 0.01"
	default:
		return "0.00"
	}
}

func signPrefix(v float64) string {
	if v >= 0 {
		return "+"
	}
	return ""
}

func signOf(v float64) string {
	if v < 0 {
		return "-"
	}
	return "+"
}
