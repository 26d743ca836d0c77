package valuation

import (
	"cmp"
	"slices"

	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"
)

// Distribution groups the USD value held per symbol across wallets, optionally
// with the NFT bucket, and returns the non-empty buckets by value descending.
func (e *Engine) Distribution(wallets []entity.Wallet, banned []entity.BannedToken, includeNFTs bool) []entity.DistributionSlice {
	bannedSet := utils.NewAddressSet(bannedAddresses(banned)...)
	index := make(map[string]int)
	slicesBySymbol := make([]entity.DistributionSlice, 0)

	add := func(s entity.DistributionSlice) {
		if i, ok := index[s.Symbol]; ok {
			slicesBySymbol[i].Balance += s.Balance
			slicesBySymbol[i].ValueUSD += s.ValueUSD
			return
		}
		index[s.Symbol] = len(slicesBySymbol)
		slicesBySymbol = append(slicesBySymbol, s)
	}

	for _, w := range wallets {
		if w.Balance == nil {
			continue
		}
		for _, tb := range w.Balance.Balances {
			if tb.Type == entity.TokenTypeNFTCollection || bannedSet.Contains(tb.Address) {
				continue
			}
			amount, ok := e.Normalize(tb)
			if !ok {
				continue
			}
			balance := amount.InexactFloat64()
			add(entity.DistributionSlice{
				Symbol:   tb.Symbol,
				Type:     tb.Type,
				Balance:  balance,
				ValueUSD: balance * tb.Price(),
			})
		}
	}

	if includeNFTs {
		if nft, ok := e.NFTCollectionEntry(wallets); ok {
			add(entity.DistributionSlice{
				Symbol:   nft.Symbol,
				Type:     nft.Type,
				Balance:  nft.Balance.InexactFloat64(),
				ValueUSD: e.TokenValue(nft),
			})
		}
	}

	var total float64
	for _, s := range slicesBySymbol {
		total += s.ValueUSD
	}

	out := make([]entity.DistributionSlice, 0, len(slicesBySymbol))
	for _, s := range slicesBySymbol {
		if s.ValueUSD <= 0 {
			continue
		}
		s.Percentage = Percentage(s.ValueUSD, total)
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b entity.DistributionSlice) int {
		return cmp.Compare(b.ValueUSD, a.ValueUSD)
	})
	return out
}
