package valuation

import (
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/logger"

	"github.com/shopspring/decimal"
)

func newTestEngine() *Engine {
	return NewEngine(logger.NewNop(), 0)
}

func ptr[T any](v T) *T {
	return &v
}

func priced(price float64) *entity.MarketData {
	return &entity.MarketData{Price: price}
}

func walletWith(id, name string, balances ...entity.TokenBalance) entity.Wallet {
	return entity.Wallet{
		ID:      id,
		Name:    name,
		Address: "addr-" + id,
		Chain:   "SOLANA",
		Balance: &entity.Balance{Balances: balances},
	}
}

func sol(raw string, md *entity.MarketData) entity.TokenBalance {
	return entity.TokenBalance{Type: entity.TokenTypeNative, Symbol: "SOL", Name: "Solana", RawBalance: entity.Amount(raw), MarketData: md}
}

func spl(symbol, address, balance string, md *entity.MarketData) entity.TokenBalance {
	return entity.TokenBalance{Type: entity.TokenTypeSPL, Symbol: symbol, Address: address, Balance: entity.Amount(balance), MarketData: md}
}

func agg(symbol string, tokenType entity.TokenType, balance string, md *entity.MarketData) entity.AggregatedToken {
	return entity.AggregatedToken{
		Symbol:     symbol,
		Type:       tokenType,
		Balance:    decimal.RequireFromString(balance),
		MarketData: md,
	}
}

func symbols(tokens []entity.AggregatedToken) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Symbol)
	}
	return out
}
