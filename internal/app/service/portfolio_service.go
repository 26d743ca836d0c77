package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"
	"portfolio_dashboard/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// Options tunes PortfolioServiceImpl.
type Options struct {
	SessionTTL           time.Duration
	HistoryRecordTimeout time.Duration
}

// snapshot is what the cache holds per session.
type snapshot struct {
	sess      *session.Session
	dashboard *entity.Dashboard
}

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	walletProvider port.WalletProvider
	bannedProvider port.BannedTokenProvider
	historyAPI     port.HistoryAPI
	engine         *valuation.Engine
	logger         port.Logger
	opts           Options

	snapshots *cache.Cache
	pending   sync.WaitGroup
	now       func() time.Time
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	wp port.WalletProvider,
	bp port.BannedTokenProvider,
	history port.HistoryAPI,
	engine *valuation.Engine,
	l port.Logger,
	opts Options,
) port.PortfolioService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	if opts.HistoryRecordTimeout <= 0 {
		opts.HistoryRecordTimeout = 5 * time.Second
	}
	s := &PortfolioServiceImpl{
		walletProvider: wp,
		bannedProvider: bp,
		historyAPI:     history,
		engine:         engine,
		logger:         l,
		opts:           opts,
		snapshots:      cache.New(opts.SessionTTL, opts.SessionTTL),
		now:            time.Now,
	}
	s.snapshots.OnEvicted(func(string, any) {
		metrics.LiveSessions.Set(float64(s.snapshots.ItemCount()))
	})
	return s
}

// GetDashboard returns the cached snapshot of the session, building it on first use.
func (s *PortfolioServiceImpl) GetDashboard(ctx context.Context, sess *session.Session) (*entity.Dashboard, error) {
	if cached, found := s.snapshots.Get(sess.Key()); found {
		return cached.(*snapshot).dashboard, nil
	}
	return s.RefreshDashboard(ctx, sess)
}

// RefreshDashboard fetches banned tokens and wallet balances concurrently and
// rebuilds the snapshot. The new snapshot replaces the previous one whole.
func (s *PortfolioServiceImpl) RefreshDashboard(ctx context.Context, sess *session.Session) (*entity.Dashboard, error) {
	var (
		banned    []entity.BannedToken
		wallets   []entity.Wallet
		fetchErrs []entity.WalletFetchError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		banned = s.bannedProvider.GetBannedTokens(gctx, sess)
		return nil
	})
	g.Go(func() error {
		var err error
		wallets, fetchErrs, err = s.walletProvider.GetWalletsWithBalances(gctx, sess)
		return err
	})
	err := g.Wait()
	// Wallet errors caused by the caller going away are not a snapshot.
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.PortfolioRefreshTotal.WithLabelValues("cancelled").Inc()
		s.logger.Warn("Dashboard refresh cancelled, keeping previous snapshot", "error", ctxErr)
		return nil, ctxErr
	}
	if err != nil {
		metrics.PortfolioRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Error("Failed to refresh dashboard", "error", err)
		return nil, err
	}

	summary := s.engine.Summarize(wallets)
	dashboard := &entity.Dashboard{
		Wallets:      wallets,
		BannedTokens: banned,
		Tokens:       s.engine.Aggregate(wallets, banned),
		Summary:      summary,
		Errors:       fetchErrs,
		Notice:       noticeFor(fetchErrs),
		GeneratedAt:  s.now().UTC(),
	}

	result := "ok"
	if len(fetchErrs) > 0 {
		result = "partial"
	}
	metrics.PortfolioRefreshTotal.WithLabelValues(result).Inc()

	s.store(sess, dashboard)
	s.logger.Info("Dashboard refreshed",
		"wallets", len(wallets),
		"tokens", len(dashboard.Tokens),
		"failed_wallets", len(fetchErrs),
		"total_usd", summary.TotalUSD)

	if summary.TotalUSD > 0 {
		s.recordHistory(ctx, sess, summary.TotalUSD)
	}
	return dashboard, nil
}

// RefreshAll rebuilds the snapshot of every live session. A session whose
// refresh fails keeps its previous snapshot.
func (s *PortfolioServiceImpl) RefreshAll(ctx context.Context) error {
	items := s.snapshots.Items()
	if len(items) == 0 {
		return nil
	}
	s.logger.Debug("Refreshing live sessions", "sessions", len(items))

	var (
		mu     sync.Mutex
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, item := range items {
		snap := item.Object.(*snapshot)
		g.Go(func() error {
			if _, err := s.RefreshDashboard(gctx, snap.sess); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d session refreshes failed", failed, len(items))
	}
	return nil
}

func (s *PortfolioServiceImpl) ListTokens(ctx context.Context, sess *session.Session, query entity.TokenQuery, page, pageSize int) (*entity.TokenPage, error) {
	d, err := s.GetDashboard(ctx, sess)
	if err != nil {
		return nil, err
	}
	rows := s.engine.Rows(s.view(d, query), d.Summary.TotalUSD)
	result := valuation.Paginate(rows, page, pageSize)
	return &result, nil
}

func (s *PortfolioServiceImpl) GetDistribution(ctx context.Context, sess *session.Session, includeNFTs bool) ([]entity.DistributionSlice, error) {
	d, err := s.GetDashboard(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.engine.Distribution(d.Wallets, d.BannedTokens, includeNFTs), nil
}

// GetHistory is read straight from the backend; it is not part of the snapshot.
func (s *PortfolioServiceImpl) GetHistory(ctx context.Context, sess *session.Session) (*entity.PortfolioHistory, error) {
	history, err := s.historyAPI.GetHistory(ctx, sess)
	if err != nil {
		s.logger.Error("Failed to load portfolio history", "error", err)
		return nil, err
	}
	return history, nil
}

// ExportCSV writes the same rows ListTokens would return, unpaginated.
func (s *PortfolioServiceImpl) ExportCSV(ctx context.Context, sess *session.Session, query entity.TokenQuery, w io.Writer) error {
	d, err := s.GetDashboard(ctx, sess)
	if err != nil {
		return err
	}
	if err := s.engine.ExportCSV(w, s.view(d, query), d.Summary.TotalUSD); err != nil {
		return apperror.InternalError(err)
	}
	return nil
}

func (s *PortfolioServiceImpl) Forget(sess *session.Session) {
	s.snapshots.Delete(sess.Key())
	metrics.LiveSessions.Set(float64(s.snapshots.ItemCount()))
}

func (s *PortfolioServiceImpl) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *PortfolioServiceImpl) view(d *entity.Dashboard, query entity.TokenQuery) []entity.AggregatedToken {
	tokens := d.Tokens
	if query.IncludeNFTs {
		tokens = s.engine.WithNFTEntry(tokens, d.Wallets)
	}
	return s.engine.FilterAndSort(tokens, query)
}

func (s *PortfolioServiceImpl) store(sess *session.Session, d *entity.Dashboard) {
	ttl := sess.TTL(s.opts.SessionTTL)
	if ttl <= 0 {
		return
	}
	s.snapshots.Set(sess.Key(), &snapshot{sess: sess, dashboard: d}, ttl)
	metrics.LiveSessions.Set(float64(s.snapshots.ItemCount()))
}

// recordHistory posts the total in the background. The write outlives the
// request that triggered it; failures are only logged.
func (s *PortfolioServiceImpl) recordHistory(ctx context.Context, sess *session.Session, total float64) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.HistoryRecordTimeout)
		defer cancel()

		if err := s.historyAPI.RecordHistory(ctx, sess, total); err != nil {
			metrics.HistoryRecordFailuresTotal.Inc()
			s.logger.Warn("Failed to record portfolio history", "total_usd", total, "error", err)
			return
		}
		s.logger.Debug("Portfolio history recorded", "total_usd", total)
	}()
}

// noticeFor picks the banner shown above the dashboard. A rate-limited wallet
// takes precedence over other failures.
func noticeFor(errs []entity.WalletFetchError) string {
	if len(errs) == 0 {
		return ""
	}
	for _, e := range errs {
		if e.RateLimited {
			return apperror.ErrRateLimited(nil).Message
		}
	}
	return apperror.ErrUpstream(nil).Message
}
