package provider

import (
	"context"
	"errors"
	"fmt"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"
	"portfolio_dashboard/internal/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

type walletProviderImpl struct {
	api           port.WalletAPI
	logger        port.Logger
	maxConcurrent int
}

// NewWalletProvider creates a new WalletProvider. maxConcurrent bounds the
// number of balance requests in flight per call.
func NewWalletProvider(api port.WalletAPI, logger port.Logger, maxConcurrent int) port.WalletProvider {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &walletProviderImpl{api: api, logger: logger, maxConcurrent: maxConcurrent}
}

// GetWalletsWithBalances lists the session's wallets and fetches every balance
// concurrently. Wallets keep their list order.
func (p *walletProviderImpl) GetWalletsWithBalances(ctx context.Context, sess *session.Session) ([]entity.Wallet, []entity.WalletFetchError, error) {
	wallets, err := p.api.ListWallets(ctx, sess)
	if err != nil {
		p.logger.Error("Failed to list wallets", "error", err)
		return nil, nil, fmt.Errorf("list wallets: %w", err)
	}
	p.logger.Debug("Fetching wallet balances", "wallets", len(wallets))

	fetchErrs := make([]*entity.WalletFetchError, len(wallets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrent)
	for i := range wallets {
		i := i
		w := &wallets[i]
		g.Go(func() error {
			balance, err := p.api.GetBalance(gctx, sess, w.ID)
			if err != nil {
				fetchErrs[i] = p.walletError(*w, err)
				return nil
			}
			w.Balance = balance
			return nil
		})
	}
	// Goroutines never return an error; failures are collected per wallet.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("fetch wallet balances: %w", err)
	}

	var failed []entity.WalletFetchError
	for _, fe := range fetchErrs {
		if fe != nil {
			failed = append(failed, *fe)
		}
	}
	if len(failed) > 0 {
		p.logger.Warn("Some wallet balances could not be fetched", "failed", len(failed), "total", len(wallets))
	} else {
		p.logger.Info("Wallet balances fetched", "count", len(wallets))
	}
	return wallets, failed, nil
}

func (p *walletProviderImpl) walletError(w entity.Wallet, err error) *entity.WalletFetchError {
	rateLimited := errors.Is(err, apperror.ErrRateLimited(nil))
	kind := "error"
	if rateLimited {
		kind = "rate_limited"
	}
	metrics.WalletBalanceFailuresTotal.WithLabelValues(kind).Inc()
	p.logger.Error("Failed to fetch wallet balance", "wallet_id", w.ID, "wallet", w.Name, "rate_limited", rateLimited, "error", err)

	return &entity.WalletFetchError{
		WalletID:    w.ID,
		WalletName:  w.Name,
		Message:     apperror.From(err).Message,
		RateLimited: rateLimited,
	}
}
