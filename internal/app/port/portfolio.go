package port

import (
	"context"
	"io"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
)

// PortfolioService builds and serves the dashboard views of a session.
type PortfolioService interface {
	// GetDashboard returns the session snapshot, loading it on first use.
	GetDashboard(ctx context.Context, sess *session.Session) (*entity.Dashboard, error)

	// RefreshDashboard re-fetches wallets, balances and banned tokens.
	RefreshDashboard(ctx context.Context, sess *session.Session) (*entity.Dashboard, error)

	// RefreshAll reloads every live session snapshot; used by the market refresher.
	RefreshAll(ctx context.Context) error

	// ListTokens returns the filtered, sorted and paginated token table.
	ListTokens(ctx context.Context, sess *session.Session, query entity.TokenQuery, page, pageSize int) (*entity.TokenPage, error)

	// GetDistribution returns the value distribution buckets.
	GetDistribution(ctx context.Context, sess *session.Session, includeNFTs bool) ([]entity.DistributionSlice, error)

	// GetHistory returns the recorded portfolio history.
	GetHistory(ctx context.Context, sess *session.Session) (*entity.PortfolioHistory, error)

	// ExportCSV writes the filtered and sorted token table as CSV.
	ExportCSV(ctx context.Context, sess *session.Session, query entity.TokenQuery, w io.Writer) error

	// Forget drops the session snapshot (logout).
	Forget(sess *session.Session)

	// Close waits for background history writes, or until ctx is done.
	Close(ctx context.Context) error
}
