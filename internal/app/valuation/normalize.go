package valuation

import (
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	lamportDecimals int32 = 9
	weiDecimals     int32 = 18
)

// Normalize converts a backend balance to human units.
//
// NATIVE SOL is read from RawBalance in lamports, NATIVE ETH from Balance in
// wei, SPL and ERC20 balances are already scaled. Any other type reports
// ok=false and a zero value. A balance that cannot be parsed is logged and
// counted as zero so one bad entry never breaks the batch.
func (e *Engine) Normalize(t entity.TokenBalance) (decimal.Decimal, bool) {
	switch {
	case t.IsNativeSOL():
		if t.RawBalance.IsEmpty() {
			return e.parse(t, t.Balance, 0), true
		}
		return e.parse(t, t.RawBalance, lamportDecimals), true
	case t.IsNativeETH():
		return e.parse(t, t.Balance, weiDecimals), true
	case t.Type == entity.TokenTypeSPL, t.Type == entity.TokenTypeERC20:
		return e.parse(t, t.Balance, 0), true
	default:
		return decimal.Zero, false
	}
}

// AggregateAmount is the amount a balance contributes to its aggregate row.
// Types Normalize does not recognise (other chains' natives) are taken as given.
func (e *Engine) AggregateAmount(t entity.TokenBalance) decimal.Decimal {
	if amount, ok := e.Normalize(t); ok {
		return amount
	}
	return e.parse(t, t.Balance, 0)
}

func (e *Engine) parse(t entity.TokenBalance, amount entity.Amount, decimals int32) decimal.Decimal {
	if amount.IsEmpty() {
		return decimal.Zero
	}
	d, err := amount.Decimal()
	if err != nil {
		e.logger.Warn("Unparseable token balance, counting it as zero",
			"symbol", t.Symbol,
			"type", string(t.Type),
			"address", t.Address,
			"balance", string(amount),
			"error", err)
		return decimal.Zero
	}
	return utils.ScaleDown(d, decimals)
}
