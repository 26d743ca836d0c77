package port

import (
	"context"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
)

// BannedTokenProvider returns the session's banned tokens, loaded once per session.
type BannedTokenProvider interface {
	GetBannedTokens(ctx context.Context, sess *session.Session) []entity.BannedToken

	// Invalidate drops the cached list after the user bans or unbans a token.
	Invalidate(sess *session.Session)
}
