package main

import (
	"fmt"
	"io"
	"math"

	"portfolio_dashboard/internal/domain/entity"

	"github.com/Rhymond/go-money"
)

// formatUSD renders a dollar amount the way go-money displays USD, e.g. $1,234.50.
func formatUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return money.NewFromFloat(v, money.USD).Display()
}

func printTotal(w io.Writer, d *entity.Dashboard) {
	fmt.Fprintf(w, "[%s] total %s (tokens %s, NFTs %s)\n",
		d.GeneratedAt.Local().Format("15:04:05"),
		formatUSD(d.Summary.TotalUSD),
		formatUSD(d.Summary.TokensUSD),
		formatUSD(d.Summary.NFTsUSD))
}

func printSummary(w io.Writer, d *entity.Dashboard) {
	fmt.Fprintf(w, "Total value:  %s\n", formatUSD(d.Summary.TotalUSD))
	fmt.Fprintf(w, "Tokens:       %s\n", formatUSD(d.Summary.TokensUSD))
	fmt.Fprintf(w, "NFTs:         %s\n", formatUSD(d.Summary.NFTsUSD))
	fmt.Fprintf(w, "Wallets:      %d\n\n", len(d.Summary.Wallets))

	for _, wv := range d.Summary.Wallets {
		status := ""
		if !wv.Fetched {
			status = "  (balance unavailable)"
		}
		fmt.Fprintf(w, "  %-20s %-10s %s", wv.Name, wv.Chain, formatUSD(wv.TokensUSD))
		if wv.NFTCount > 0 {
			fmt.Fprintf(w, " + %d NFTs %s", wv.NFTCount, formatUSD(wv.NFTsUSD))
		}
		fmt.Fprintln(w, status)
	}
	if d.Notice != "" {
		fmt.Fprintf(w, "\n%s\n", d.Notice)
	}
}
