package valuation

import (
	"math"
	"testing"

	"portfolio_dashboard/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuedWallet() entity.Wallet {
	w := walletWith("w1", "Main",
		sol("2000000000", priced(100)),
		entity.TokenBalance{Type: entity.TokenTypeNative, Symbol: "ETH", Balance: "1000000000000000000", MarketData: priced(2000)},
		spl("NOPRICE", "np", "500", nil),
		spl("ZERO", "zero", "500", priced(0)),
		entity.TokenBalance{Type: entity.TokenTypeERC20, Symbol: "BAD", Balance: "abc", MarketData: priced(5)},
		entity.TokenBalance{Type: entity.TokenTypeNative, Symbol: "BNB", Balance: "1", MarketData: priced(300)},
	)
	w.Balance.NFTs = []entity.NFT{
		{ContractAddress: "c1", TokenID: "1", FloorPrice: ptr(1.0), FloorPriceUSD: ptr(2500.0)},
		{ContractAddress: "c2", TokenID: "2", FloorPriceUSD: ptr(100.0)},
		{ContractAddress: "c3", TokenID: "3", FloorPrice: ptr(0.2)},
	}
	return w
}

func TestWalletTotals(t *testing.T) {
	e := newTestEngine()
	w := valuedWallet()

	assert.InDelta(t, 2200.0, e.WalletTokensValue(w), 1e-9)
	assert.InDelta(t, 2500.0, e.WalletNFTsValue(w), 1e-9)

	empty := entity.Wallet{ID: "w2", Name: "Pending"}
	assert.Zero(t, e.WalletTokensValue(empty))
	assert.Zero(t, e.WalletNFTsValue(empty))
}

func TestSummarize(t *testing.T) {
	e := newTestEngine()
	summary := e.Summarize([]entity.Wallet{valuedWallet(), {ID: "w2", Name: "Pending", Chain: "ETHEREUM"}})

	assert.InDelta(t, 2200.0, summary.TokensUSD, 1e-9)
	assert.InDelta(t, 2500.0, summary.NFTsUSD, 1e-9)
	assert.InDelta(t, 4700.0, summary.TotalUSD, 1e-9)

	require.Len(t, summary.Wallets, 2)
	card := summary.Wallets[0]
	assert.Equal(t, "w1", card.WalletID)
	assert.InDelta(t, 2200.0, card.TokensUSD, 1e-9, "wallet card excludes NFTs")
	assert.InDelta(t, 2500.0, card.NFTsUSD, 1e-9)
	assert.Equal(t, 3, card.NFTCount)
	assert.True(t, card.Fetched)

	assert.False(t, summary.Wallets[1].Fetched)
	assert.Zero(t, summary.Wallets[1].TokensUSD)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name         string
		value, total float64
		want         float64
	}{
		{"share", 50, 200, 25},
		{"capped at 100", 300, 200, 100},
		{"zero total", 10, 0, 0},
		{"negative total", 10, -5, 0},
		{"negative value", -5, 100, 0},
		{"infinite value", math.Inf(1), 100, 0},
		{"nan value", math.NaN(), 100, 0},
		{"nan total", 5, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.value, tt.total)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.False(t, math.IsNaN(got))
			assert.False(t, math.IsInf(got, 0))
		})
	}
}
