package entity

import "github.com/shopspring/decimal"

// AggregatedToken merges every wallet entry that shares a symbol. It is
// derived on each snapshot and never persisted.
type AggregatedToken struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name,omitempty"`
	Type       TokenType       `json:"type"`
	Address    string          `json:"address,omitempty"`
	Decimals   int             `json:"decimals,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	Wallets    []string        `json:"wallets"`
	MarketData *MarketData     `json:"marketData,omitempty"`
}

func (t AggregatedToken) IsNFTCollection() bool {
	return t.Type == TokenTypeNFTCollection
}

func (t AggregatedToken) Price() float64 {
	if t.MarketData == nil {
		return 0
	}
	return t.MarketData.Price
}

// Change24h returns the 24h percent change, 0 when unknown.
func (t AggregatedToken) Change24h() float64 {
	if t.MarketData == nil || t.MarketData.PercentChange24h == nil {
		return 0
	}
	return *t.MarketData.PercentChange24h
}

// HasWallet reports whether the wallet name is already attributed to the token.
func (t AggregatedToken) HasWallet(name string) bool {
	for _, w := range t.Wallets {
		if w == name {
			return true
		}
	}
	return false
}
