package restapi

import (
	"context"
	"io"
	"strings"
	"sync"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"
)

// fakeBackend implements port.BackendClient with canned answers.
type fakeBackend struct {
	mu sync.Mutex

	user       *entity.User
	loginErr   error
	created    []entity.NewWalletRequest
	banned     []entity.BanTokenRequest
	unbanned   []int
	banQueries []entity.BannedTokenQuery
}

func (f *fakeBackend) Login(_ context.Context, creds entity.Credentials) (*entity.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &entity.LoginResult{Token: "token-" + creds.Username, User: entity.User{Username: creds.Username}}, nil
}

func (f *fakeBackend) Register(context.Context, entity.Registration) error { return nil }

func (f *fakeBackend) Verify(_ context.Context, sess *session.Session) (*entity.User, error) {
	if f.user == nil {
		return nil, apperror.ErrSessionExpired()
	}
	return f.user, nil
}

func (f *fakeBackend) ListWallets(context.Context, *session.Session) ([]entity.Wallet, error) {
	return []entity.Wallet{}, nil
}

func (f *fakeBackend) GetBalance(context.Context, *session.Session, string) (*entity.Balance, error) {
	return &entity.Balance{}, nil
}

func (f *fakeBackend) CreateWallet(_ context.Context, _ *session.Session, req entity.NewWalletRequest) (*entity.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	return &entity.Wallet{ID: "new", Name: req.Name, Address: req.Address, Chain: req.Chain}, nil
}

func (f *fakeBackend) DeleteWallet(context.Context, *session.Session, string) error { return nil }

func (f *fakeBackend) GetHistory(context.Context, *session.Session) (*entity.PortfolioHistory, error) {
	return &entity.PortfolioHistory{}, nil
}

func (f *fakeBackend) RecordHistory(context.Context, *session.Session, float64) error { return nil }

func (f *fakeBackend) ListBannedTokens(_ context.Context, _ *session.Session, q entity.BannedTokenQuery) (*entity.BannedTokenPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banQueries = append(f.banQueries, q)
	return &entity.BannedTokenPage{Tokens: []entity.BannedToken{}, Page: q.Page}, nil
}

func (f *fakeBackend) BanToken(_ context.Context, _ *session.Session, req entity.BanTokenRequest) (*entity.BannedToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.banned = append(f.banned, req)
	return &entity.BannedToken{ID: 1, Address: req.Address}, nil
}

func (f *fakeBackend) UnbanToken(_ context.Context, _ *session.Session, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unbanned = append(f.unbanned, id)
	return nil
}

func (f *fakeBackend) GetProfile(context.Context, *session.Session) (*entity.Profile, error) {
	return &entity.Profile{User: entity.User{Username: "alice"}}, nil
}

func (f *fakeBackend) UpdateProfile(context.Context, *session.Session, entity.ProfileUpdate) error {
	return nil
}

func (f *fakeBackend) DeleteProfile(context.Context, *session.Session) error { return nil }

func (f *fakeBackend) SaveAPIKey(context.Context, *session.Session, entity.APIKey) error { return nil }

func (f *fakeBackend) DeleteAPIKey(context.Context, *session.Session, string) error { return nil }

func (f *fakeBackend) ListUsers(context.Context, *session.Session) ([]entity.User, error) {
	return []entity.User{{Username: "root", Role: "admin"}}, nil
}

func (f *fakeBackend) GetSystemStats(context.Context, *session.Session) (*entity.SystemStats, error) {
	return &entity.SystemStats{Platform: "linux"}, nil
}

func (f *fakeBackend) ListAllWallets(context.Context, *session.Session) ([]entity.AdminWallet, error) {
	return []entity.AdminWallet{}, nil
}

func (f *fakeBackend) ListAllHistory(context.Context, *session.Session) ([]entity.AdminHistoryEntry, error) {
	return []entity.AdminHistoryEntry{}, nil
}

// fakePortfolio implements port.PortfolioService.
type fakePortfolio struct {
	mu sync.Mutex

	dashboard *entity.Dashboard
	err       error
	forgotten int
	lastQuery entity.TokenQuery
	lastPage  [2]int
}

func (f *fakePortfolio) GetDashboard(context.Context, *session.Session) (*entity.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakePortfolio) RefreshDashboard(context.Context, *session.Session) (*entity.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakePortfolio) RefreshAll(context.Context) error { return nil }

func (f *fakePortfolio) ListTokens(_ context.Context, _ *session.Session, q entity.TokenQuery, page, pageSize int) (*entity.TokenPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	f.lastPage = [2]int{page, pageSize}
	if f.err != nil {
		return nil, f.err
	}
	return &entity.TokenPage{Tokens: []entity.TokenRow{}, Page: page, PageSize: pageSize}, nil
}

func (f *fakePortfolio) GetDistribution(context.Context, *session.Session, bool) ([]entity.DistributionSlice, error) {
	return []entity.DistributionSlice{{Symbol: "SOL", ValueUSD: 1, Percentage: 100}}, f.err
}

func (f *fakePortfolio) GetHistory(context.Context, *session.Session) (*entity.PortfolioHistory, error) {
	return &entity.PortfolioHistory{Labels: []string{"d1"}, Values: []float64{1}}, f.err
}

func (f *fakePortfolio) ExportCSV(_ context.Context, _ *session.Session, _ entity.TokenQuery, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.Copy(w, strings.NewReader("Symbole;Nom\nSOL;Solana\n"))
	return err
}

func (f *fakePortfolio) Forget(*session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten++
}

func (f *fakePortfolio) Close(context.Context) error { return nil }

type fakeBanned struct {
	mu          sync.Mutex
	invalidated int
}

func (f *fakeBanned) GetBannedTokens(context.Context, *session.Session) []entity.BannedToken {
	return nil
}

func (f *fakeBanned) Invalidate(*session.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
}
