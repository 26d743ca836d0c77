package valuation

import (
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

// Aggregate merges the balances of every wallet by symbol.
//
// Wallets without a balance, NFT collection entries and banned addresses are
// skipped. Balances are summed and wallet names appended once. Market data is
// last-write-wins: each merged entry replaces it, even with nil. Rows come out
// in first-seen order.
func (e *Engine) Aggregate(wallets []entity.Wallet, banned []entity.BannedToken) []entity.AggregatedToken {
	bannedSet := utils.NewAddressSet(bannedAddresses(banned)...)
	index := make(map[string]int)
	tokens := make([]entity.AggregatedToken, 0)

	for _, wallet := range wallets {
		if wallet.Balance == nil {
			continue
		}
		for _, tb := range wallet.Balance.Balances {
			if tb.Type == entity.TokenTypeNFTCollection {
				continue
			}
			if bannedSet.Contains(tb.Address) {
				continue
			}

			amount := e.AggregateAmount(tb)
			i, seen := index[tb.Symbol]
			if !seen {
				index[tb.Symbol] = len(tokens)
				tokens = append(tokens, entity.AggregatedToken{
					Symbol:     tb.Symbol,
					Name:       tb.Name,
					Type:       tb.Type,
					Address:    tb.Address,
					Decimals:   tb.Decimals,
					Balance:    amount,
					Wallets:    []string{wallet.Name},
					MarketData: tb.MarketData,
				})
				continue
			}

			agg := &tokens[i]
			agg.Balance = agg.Balance.Add(amount)
			if !agg.HasWallet(wallet.Name) {
				agg.Wallets = append(agg.Wallets, wallet.Name)
			}
			agg.MarketData = tb.MarketData
		}
	}
	return tokens
}

// NFTCollectionEntry builds the synthetic row standing for every displayable
// NFT. Its balance is the NFT count and its price the first NFT's floor price
// (in ETH). ok is false when no wallet holds a displayable NFT.
func (e *Engine) NFTCollectionEntry(wallets []entity.Wallet) (entity.AggregatedToken, bool) {
	var (
		count    int64
		floor    float64
		hasFloor bool
		holders  []string
	)
	for _, wallet := range wallets {
		if wallet.Balance == nil {
			continue
		}
		held := false
		for _, nft := range wallet.Balance.NFTs {
			if !nft.Displayable() {
				continue
			}
			if count == 0 && nft.FloorPrice != nil {
				floor = *nft.FloorPrice
				hasFloor = true
			}
			count++
			held = true
		}
		if held {
			holders = append(holders, wallet.Name)
		}
	}
	if count == 0 {
		return entity.AggregatedToken{}, false
	}

	md := &entity.MarketData{}
	if hasFloor {
		md.Price = floor
	}
	return entity.AggregatedToken{
		Symbol:     entity.NFTCollectionSymbol,
		Name:       "NFT Collection",
		Type:       entity.TokenTypeNFTCollection,
		Balance:    decimal.NewFromInt(count),
		Wallets:    holders,
		MarketData: md,
	}, true
}

// WithNFTEntry appends the synthetic NFT row when any wallet holds NFTs.
func (e *Engine) WithNFTEntry(tokens []entity.AggregatedToken, wallets []entity.Wallet) []entity.AggregatedToken {
	nft, ok := e.NFTCollectionEntry(wallets)
	if !ok {
		return tokens
	}
	out := make([]entity.AggregatedToken, 0, len(tokens)+1)
	out = append(out, tokens...)
	return append(out, nft)
}

func bannedAddresses(banned []entity.BannedToken) []string {
	addresses := make([]string, 0, len(banned))
	for _, b := range banned {
		addresses = append(addresses, b.Address)
	}
	return addresses
}
