package backend

import (
	"context"
	"errors"
	"fmt"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/valyala/fasthttp"
)

func (c *clientImpl) Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error) {
	var result entity.LoginResult
	err := c.getJSON(ctx, call{
		endpoint: "auth.login",
		method:   fasthttp.MethodPost,
		path:     "/api/auth/login",
		body:     creds,
	}, &result)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && (appErr.HTTPStatus == fasthttp.StatusUnauthorized || appErr.HTTPStatus == fasthttp.StatusBadRequest) {
			return nil, apperror.ErrInvalidCredentials()
		}
		return nil, err
	}
	if result.Token == "" {
		return nil, apperror.ErrUpstream(fmt.Errorf("login response carries no token"))
	}
	return &result, nil
}

func (c *clientImpl) Register(ctx context.Context, reg entity.Registration) error {
	_, err := c.do(ctx, call{
		endpoint: "auth.register",
		method:   fasthttp.MethodPost,
		path:     "/api/auth/register",
		body:     reg,
	})
	return err
}

// Verify returns the user behind the session token.
func (c *clientImpl) Verify(ctx context.Context, sess *session.Session) (*entity.User, error) {
	var user entity.User
	if err := c.getJSON(ctx, call{
		endpoint: "auth.verify",
		method:   fasthttp.MethodGet,
		path:     "/api/auth/verify",
		sess:     sess,
	}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
