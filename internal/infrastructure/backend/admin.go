package backend

import (
	"context"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

func (c *clientImpl) ListUsers(ctx context.Context, sess *session.Session) ([]entity.User, error) {
	return adminList[entity.User](ctx, c, sess, "admin.users", "/api/admin/users")
}

func (c *clientImpl) GetSystemStats(ctx context.Context, sess *session.Session) (*entity.SystemStats, error) {
	var stats entity.SystemStats
	if err := c.getJSON(ctx, call{
		endpoint: "admin.stats",
		method:   fasthttp.MethodGet,
		path:     "/api/admin/stats/system",
		sess:     sess,
	}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *clientImpl) ListAllWallets(ctx context.Context, sess *session.Session) ([]entity.AdminWallet, error) {
	return adminList[entity.AdminWallet](ctx, c, sess, "admin.wallets", "/api/admin/wallets")
}

func (c *clientImpl) ListAllHistory(ctx context.Context, sess *session.Session) ([]entity.AdminHistoryEntry, error) {
	return adminList[entity.AdminHistoryEntry](ctx, c, sess, "admin.history", "/api/admin/portfolio-history")
}

func adminList[T any](ctx context.Context, c *clientImpl, sess *session.Session, endpoint, path string) ([]T, error) {
	raw, err := c.do(ctx, call{
		endpoint: endpoint,
		method:   fasthttp.MethodGet,
		path:     path,
		sess:     sess,
	})
	if err != nil {
		return nil, err
	}
	return decodeList[T](c.logger, endpoint, raw)
}
