package entity

import "time"

// TokenRow is an aggregated token as shown in the token table.
type TokenRow struct {
	AggregatedToken
	ValueUSD            float64 `json:"valueUsd"`
	PortfolioPercentage float64 `json:"portfolioPercentage"`
	DisplayBalance      string  `json:"displayBalance"`
}

// TokenPage is one page of the filtered and sorted token table.
type TokenPage struct {
	Tokens     []TokenRow `json:"tokens"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

// WalletValuation is the per-wallet card. TokensUSD never includes NFTs;
// NFTsUSD is reported next to it.
type WalletValuation struct {
	WalletID  string  `json:"walletId"`
	Name      string  `json:"name"`
	Chain     string  `json:"chain"`
	Address   string  `json:"address"`
	TokensUSD float64 `json:"tokensUsd"`
	NFTsUSD   float64 `json:"nftsUsd"`
	NFTCount  int     `json:"nftCount"`
	Fetched   bool    `json:"fetched"`
}

// PortfolioSummary holds the portfolio-wide totals. TotalUSD = TokensUSD + NFTsUSD.
type PortfolioSummary struct {
	TotalUSD  float64           `json:"totalUsd"`
	TokensUSD float64           `json:"tokensUsd"`
	NFTsUSD   float64           `json:"nftsUsd"`
	Wallets   []WalletValuation `json:"wallets"`
}

// DistributionSlice is one bucket of the value distribution chart.
type DistributionSlice struct {
	Symbol     string    `json:"symbol"`
	Type       TokenType `json:"type"`
	Balance    float64   `json:"balance"`
	ValueUSD   float64   `json:"valueUsd"`
	Percentage float64   `json:"percentage"`
}

// PortfolioHistory is the chart series stored by the history service.
type PortfolioHistory struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// HistoryRecord is the body sent to POST /api/wallets/portfolio-history.
type HistoryRecord struct {
	TotalValue float64 `json:"totalValue"`
}

// Dashboard is one in-memory snapshot of a session's portfolio.
type Dashboard struct {
	Wallets      []Wallet           `json:"wallets"`
	BannedTokens []BannedToken      `json:"bannedTokens"`
	Tokens       []AggregatedToken  `json:"tokens"`
	Summary      PortfolioSummary   `json:"summary"`
	Errors       []WalletFetchError `json:"errors,omitempty"`
	Notice       string             `json:"notice,omitempty"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}
