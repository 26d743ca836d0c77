package backend

import (
	"context"
	"net/url"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/valyala/fasthttp"
)

const profilePath = "/api/profile"

func (c *clientImpl) GetProfile(ctx context.Context, sess *session.Session) (*entity.Profile, error) {
	var profile entity.Profile
	if err := c.getJSON(ctx, call{
		endpoint: "profile.get",
		method:   fasthttp.MethodGet,
		path:     profilePath,
		sess:     sess,
	}, &profile); err != nil {
		return nil, err
	}
	if profile.Wallets == nil {
		profile.Wallets = []entity.Wallet{}
	}
	if profile.APIKeys == nil {
		profile.APIKeys = []entity.APIKey{}
	}
	return &profile, nil
}

func (c *clientImpl) UpdateProfile(ctx context.Context, sess *session.Session, update entity.ProfileUpdate) error {
	_, err := c.do(ctx, call{
		endpoint: "profile.update",
		method:   fasthttp.MethodPut,
		path:     profilePath,
		sess:     sess,
		body:     update,
	})
	return err
}

func (c *clientImpl) DeleteProfile(ctx context.Context, sess *session.Session) error {
	_, err := c.do(ctx, call{
		endpoint: "profile.delete",
		method:   fasthttp.MethodDelete,
		path:     profilePath,
		sess:     sess,
	})
	return err
}

func (c *clientImpl) SaveAPIKey(ctx context.Context, sess *session.Session, key entity.APIKey) error {
	_, err := c.do(ctx, call{
		endpoint: "keys.save",
		method:   fasthttp.MethodPost,
		path:     "/api/keys",
		sess:     sess,
		body:     key,
	})
	return err
}

func (c *clientImpl) DeleteAPIKey(ctx context.Context, sess *session.Session, service string) error {
	_, err := c.do(ctx, call{
		endpoint: "keys.delete",
		method:   fasthttp.MethodDelete,
		path:     "/api/keys/" + url.PathEscape(service),
		sess:     sess,
	})
	return err
}
