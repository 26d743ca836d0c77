package backend

import (
	"context"
	"net/url"
	"strconv"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

const tokenBanPath = "/api/token-ban"

func (c *clientImpl) ListBannedTokens(ctx context.Context, sess *session.Session, query entity.BannedTokenQuery) (*entity.BannedTokenPage, error) {
	path := tokenBanPath
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page entity.BannedTokenPage
	if err := c.getJSON(ctx, call{
		endpoint: "tokenban.list",
		method:   fasthttp.MethodGet,
		path:     path,
		sess:     sess,
	}, &page); err != nil {
		return nil, err
	}
	if page.Tokens == nil {
		c.logger.Warn("Banned token response has no tokens array, using an empty list")
		page.Tokens = []entity.BannedToken{}
	}
	return &page, nil
}

func (c *clientImpl) BanToken(ctx context.Context, sess *session.Session, req entity.BanTokenRequest) (*entity.BannedToken, error) {
	var banned entity.BannedToken
	if err := c.getJSON(ctx, call{
		endpoint: "tokenban.create",
		method:   fasthttp.MethodPost,
		path:     tokenBanPath,
		sess:     sess,
		body:     req,
	}, &banned); err != nil {
		return nil, err
	}
	return &banned, nil
}

func (c *clientImpl) UnbanToken(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.do(ctx, call{
		endpoint: "tokenban.delete",
		method:   fasthttp.MethodDelete,
		path:     tokenBanPath + "/" + strconv.Itoa(id),
		sess:     sess,
	})
	return err
}
