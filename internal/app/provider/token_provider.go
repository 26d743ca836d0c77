package provider

import (
	"context"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"

	"github.com/patrickmn/go-cache"
)

// maxBannedPages stops paging if the backend keeps reporting more pages.
const maxBannedPages = 50

type bannedTokenProviderImpl struct {
	api      port.TokenBanAPI
	logger   port.Logger
	cache    *cache.Cache
	pageSize int
	maxTTL   time.Duration
}

// NewBannedTokenProvider creates a BannedTokenProvider caching one list per
// session for at most maxTTL.
func NewBannedTokenProvider(api port.TokenBanAPI, logger port.Logger, pageSize int, maxTTL time.Duration) port.BannedTokenProvider {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &bannedTokenProviderImpl{
		api:      api,
		logger:   logger,
		cache:    cache.New(maxTTL, 2*maxTTL),
		pageSize: pageSize,
		maxTTL:   maxTTL,
	}
}

// GetBannedTokens returns every banned token of the session, walking all pages.
// A failure yields an empty list, which is not cached, so the next snapshot
// retries.
func (p *bannedTokenProviderImpl) GetBannedTokens(ctx context.Context, sess *session.Session) []entity.BannedToken {
	key := sess.Key()
	if cached, found := p.cache.Get(key); found {
		p.logger.Debug("Returning cached banned tokens")
		return cached.([]entity.BannedToken)
	}

	tokens := make([]entity.BannedToken, 0)
	for page := 1; page <= maxBannedPages; page++ {
		resp, err := p.api.ListBannedTokens(ctx, sess, entity.BannedTokenQuery{Page: page, Limit: p.pageSize})
		if err != nil {
			p.logger.Error("Failed to load banned tokens, continuing without them", "page", page, "error", err)
			return []entity.BannedToken{}
		}
		tokens = append(tokens, resp.Tokens...)
		if len(resp.Tokens) == 0 || page >= resp.TotalPages {
			break
		}
	}

	if ttl := sess.TTL(p.maxTTL); ttl > 0 {
		p.cache.Set(key, tokens, ttl)
	}
	p.logger.Debug("Banned tokens loaded", "count", len(tokens))
	return tokens
}

func (p *bannedTokenProviderImpl) Invalidate(sess *session.Session) {
	p.cache.Delete(sess.Key())
}
