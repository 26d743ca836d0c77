package backend

import (
	"context"
	"net/url"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

func (c *clientImpl) ListWallets(ctx context.Context, sess *session.Session) ([]entity.Wallet, error) {
	const endpoint = "wallets.list"
	raw, err := c.do(ctx, call{
		endpoint: endpoint,
		method:   fasthttp.MethodGet,
		path:     "/api/wallets",
		sess:     sess,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[entity.Wallet](c.logger, endpoint, raw)
}

// GetBalance fetches the balances of one wallet. A quota failure of the
// backend's balance provider comes back as an UPSTREAM_002 error.
func (c *clientImpl) GetBalance(ctx context.Context, sess *session.Session, walletID string) (*entity.Balance, error) {
	var balance entity.Balance
	if err := c.getJSON(ctx, call{
		endpoint: "wallets.balance",
		method:   fasthttp.MethodGet,
		path:     "/api/wallets/balance/" + url.PathEscape(walletID),
		sess:     sess,
	}, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *clientImpl) CreateWallet(ctx context.Context, sess *session.Session, req entity.NewWalletRequest) (*entity.Wallet, error) {
	var wallet entity.Wallet
	if err := c.getJSON(ctx, call{
		endpoint: "wallets.create",
		method:   fasthttp.MethodPost,
		path:     "/api/wallets",
		sess:     sess,
		body:     req,
	}, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (c *clientImpl) DeleteWallet(ctx context.Context, sess *session.Session, walletID string) error {
	_, err := c.do(ctx, call{
		endpoint: "wallets.delete",
		method:   fasthttp.MethodDelete,
		path:     "/api/wallets/" + url.PathEscape(walletID),
		sess:     sess,
	})
	return err
}
