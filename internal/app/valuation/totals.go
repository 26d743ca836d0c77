package valuation

import (
	"math"

	"portfolio_dashboard/internal/domain/entity"
)

// WalletTokensValue sums normalized balance × price over the wallet's priced
// tokens. NFTs are not included.
func (e *Engine) WalletTokensValue(w entity.Wallet) float64 {
	if w.Balance == nil {
		return 0
	}
	var total float64
	for _, tb := range w.Balance.Balances {
		price := tb.Price()
		if price <= 0 {
			continue
		}
		amount, ok := e.Normalize(tb)
		if !ok {
			continue
		}
		total += amount.InexactFloat64() * price
	}
	return total
}

// WalletNFTsValue sums the USD floor price of NFTs with a known floor.
func (e *Engine) WalletNFTsValue(w entity.Wallet) float64 {
	if w.Balance == nil {
		return 0
	}
	var total float64
	for _, nft := range w.Balance.NFTs {
		if usd, ok := nft.ValuedUSD(); ok {
			total += usd
		}
	}
	return total
}

// Summarize values every wallet. Wallet cards carry token value only; the
// portfolio total adds NFT floor values on top.
func (e *Engine) Summarize(wallets []entity.Wallet) entity.PortfolioSummary {
	summary := entity.PortfolioSummary{
		Wallets: make([]entity.WalletValuation, 0, len(wallets)),
	}
	for _, w := range wallets {
		tokens := e.WalletTokensValue(w)
		nfts := e.WalletNFTsValue(w)
		nftCount := 0
		if w.Balance != nil {
			nftCount = len(w.Balance.NFTs)
		}

		summary.Wallets = append(summary.Wallets, entity.WalletValuation{
			WalletID:  w.ID,
			Name:      w.Name,
			Chain:     w.Chain,
			Address:   w.Address,
			TokensUSD: tokens,
			NFTsUSD:   nfts,
			NFTCount:  nftCount,
			Fetched:   w.HasBalance(),
		})
		summary.TokensUSD += tokens
		summary.NFTsUSD += nfts
	}
	summary.TotalUSD = summary.TokensUSD + summary.NFTsUSD
	return summary
}

// Percentage returns value as a share of total in [0, 100]. Degenerate
// inputs (non-positive or non-finite) give 0.
func Percentage(value, total float64) float64 {
	if !(total > 0) || !(value > 0) || math.IsInf(value, 0) || math.IsInf(total, 0) {
		return 0
	}
	p := value / total * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return math.Min(p, 100)
}
