package port

import (
	"context"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
)

// WalletProvider loads the session's wallets together with their balances.
// A wallet whose balance fetch failed is returned without a balance and is
// reported in the error slice; only a failure to list wallets is returned as error.
type WalletProvider interface {
	GetWalletsWithBalances(ctx context.Context, sess *session.Session) ([]entity.Wallet, []entity.WalletFetchError, error)
}
