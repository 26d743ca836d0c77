// Package valuation turns raw wallet balances into the portfolio views:
// normalized balances, cross-wallet aggregates, the filtered and sorted token
// table, wallet and portfolio totals, the distribution chart and CSV export.
//
// Everything here is a pure function of its inputs; the Engine only carries
// the logger used to report unparseable balances and the NFT pricing rate.
package valuation

import "portfolio_dashboard/internal/app/port"

// DefaultNFTEthUSDRate is the fixed ETH/USD rate used to value NFT floor
// prices quoted in ETH.
const DefaultNFTEthUSDRate = 380.23

// Engine computes portfolio valuations.
type Engine struct {
	logger        port.Logger
	nftEthUSDRate float64
}

// NewEngine creates an Engine. A non-positive rate falls back to DefaultNFTEthUSDRate.
func NewEngine(logger port.Logger, nftEthUSDRate float64) *Engine {
	if nftEthUSDRate <= 0 {
		nftEthUSDRate = DefaultNFTEthUSDRate
	}
	return &Engine{
		logger:        logger,
		nftEthUSDRate: nftEthUSDRate,
	}
}

// NFTEthUSDRate returns the rate applied to NFT floor prices.
func (e *Engine) NFTEthUSDRate() float64 {
	return e.nftEthUSDRate
}
