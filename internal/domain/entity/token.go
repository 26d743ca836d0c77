package entity

// TokenType classifies a balance entry returned by the backend.
type TokenType string

const (
	TokenTypeNative        TokenType = "NATIVE"
	TokenTypeSPL           TokenType = "SPL"
	TokenTypeERC20         TokenType = "ERC20"
	TokenTypeNFTCollection TokenType = "NFT_COLLECTION"
)

const (
	SymbolSOL = "SOL"
	SymbolETH = "ETH"

	// NFTCollectionSymbol is the symbol of the synthetic entry that stands for
	// every NFT held across wallets.
	NFTCollectionSymbol = "NFTs"
)

var stablecoinSymbols = map[string]struct{}{
	"USDT": {},
	"USDC": {},
	"DAI":  {},
	"BUSD": {},
}

// IsStablecoin reports whether the symbol is one of the tracked USD stablecoins.
// The match is case-sensitive: "usdc" is not USDC.
func IsStablecoin(symbol string) bool {
	_, ok := stablecoinSymbols[symbol]
	return ok
}

// MarketData is the pricing snapshot the backend attaches to a token.
type MarketData struct {
	Price            float64  `json:"price"`
	PercentChange24h *float64 `json:"percent_change_24h,omitempty"`
	MarketCap        float64  `json:"market_cap,omitempty"`
	Volume24h        float64  `json:"volume_24h,omitempty"`
	LastUpdated      string   `json:"last_updated,omitempty"`
	USDChange24h     *float64 `json:"usd_change_24h,omitempty"`
}

// TokenBalance is one fungible (or NFT collection) entry of a wallet balance.
type TokenBalance struct {
	Type           TokenType   `json:"type"`
	Symbol         string      `json:"symbol"`
	Name           string      `json:"name,omitempty"`
	Address        string      `json:"address"`
	Balance        Amount      `json:"balance"`
	RawBalance     Amount      `json:"rawBalance,omitempty"`
	Decimals       int         `json:"decimals,omitempty"`
	DisplayBalance string      `json:"displayBalance,omitempty"`
	MarketData     *MarketData `json:"marketData,omitempty"`
}

// Price returns the market price or 0 when no market data is attached.
func (t TokenBalance) Price() float64 {
	if t.MarketData == nil {
		return 0
	}
	return t.MarketData.Price
}

// IsNativeSOL reports whether this is the Solana native balance.
func (t TokenBalance) IsNativeSOL() bool {
	return t.Type == TokenTypeNative && t.Symbol == SymbolSOL
}

// IsNativeETH reports whether this is the Ethereum native balance.
func (t TokenBalance) IsNativeETH() bool {
	return t.Type == TokenTypeNative && t.Symbol == SymbolETH
}
