package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio_dashboard/internal/app/provider"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"
	"portfolio_dashboard/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalletProvider struct {
	mu       sync.Mutex
	calls    int
	wallets  []entity.Wallet
	failures []entity.WalletFetchError
	err      error
}

func (f *fakeWalletProvider) GetWalletsWithBalances(context.Context, *session.Session) ([]entity.Wallet, []entity.WalletFetchError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.wallets, f.failures, nil
}

func (f *fakeWalletProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBannedProvider struct {
	tokens []entity.BannedToken
}

func (f *fakeBannedProvider) GetBannedTokens(context.Context, *session.Session) []entity.BannedToken {
	return f.tokens
}

func (f *fakeBannedProvider) Invalidate(*session.Session) {}

type fakeHistoryAPI struct {
	mu       sync.Mutex
	recorded []float64
	err      error
	history  *entity.PortfolioHistory
}

func (f *fakeHistoryAPI) GetHistory(context.Context, *session.Session) (*entity.PortfolioHistory, error) {
	return f.history, f.err
}

func (f *fakeHistoryAPI) RecordHistory(_ context.Context, _ *session.Session, total float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recorded = append(f.recorded, total)
	return f.err
}

func (f *fakeHistoryAPI) records() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]float64(nil), f.recorded...)
}

func md(price float64) *entity.MarketData {
	return &entity.MarketData{Price: price}
}

func fixtureWallets() []entity.Wallet {
	return []entity.Wallet{
		{
			ID: "w1", Name: "Phantom", Chain: "SOLANA",
			Balance: &entity.Balance{Balances: []entity.TokenBalance{
				{Type: entity.TokenTypeNative, Symbol: "SOL", Name: "Solana", RawBalance: "2000000000", MarketData: md(100)},
				{Type: entity.TokenTypeSPL, Symbol: "USDC", Name: "USD Coin", Address: "usdc", Balance: "50", MarketData: md(1)},
				{Type: entity.TokenTypeSPL, Symbol: "SCAM", Name: "Scam", Address: "scam", Balance: "1000", MarketData: md(1)},
			}},
		},
		{
			ID: "w2", Name: "Ledger", Chain: "ETHEREUM",
			Balance: &entity.Balance{Balances: []entity.TokenBalance{
				{Type: entity.TokenTypeERC20, Symbol: "USDC", Name: "USD Coin", Address: "0xusdc", Balance: "50", MarketData: md(1)},
			}},
		},
		{ID: "w3", Name: "Broken", Chain: "BSC"},
	}
}

type serviceFixture struct {
	svc     *PortfolioServiceImpl
	wallets *fakeWalletProvider
	history *fakeHistoryAPI
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	wallets := &fakeWalletProvider{
		wallets:  fixtureWallets(),
		failures: []entity.WalletFetchError{{WalletID: "w3", WalletName: "Broken", Message: "boom"}},
	}
	history := &fakeHistoryAPI{history: &entity.PortfolioHistory{Labels: []string{"d1"}, Values: []float64{1}}}
	svc := NewPortfolioService(
		wallets,
		&fakeBannedProvider{tokens: []entity.BannedToken{{ID: 1, Address: "SCAM"}}},
		history,
		valuation.NewEngine(logger.NewNop(), 0),
		logger.NewNop(),
		Options{SessionTTL: time.Minute, HistoryRecordTimeout: time.Second},
	).(*PortfolioServiceImpl)
	return serviceFixture{svc: svc, wallets: wallets, history: history}
}

func newSession(t *testing.T, token string) *session.Session {
	t.Helper()
	sess, err := session.New(token)
	require.NoError(t, err)
	return sess
}

func TestGetDashboard(t *testing.T) {
	f := newServiceFixture(t)
	sess := newSession(t, "alice")
	ctx := context.Background()

	d, err := f.svc.GetDashboard(ctx, sess)
	require.NoError(t, err)

	require.Len(t, d.Tokens, 2, "banned token is excluded")
	assert.Equal(t, []string{"SOL", "USDC"}, []string{d.Tokens[0].Symbol, d.Tokens[1].Symbol})
	assert.Equal(t, "100", d.Tokens[1].Balance.String())
	assert.Equal(t, []string{"Phantom", "Ledger"}, d.Tokens[1].Wallets)
	assert.InDelta(t, 200+50+1000+50, d.Summary.TotalUSD, 1e-9, "totals do not exclude banned tokens")
	assert.Equal(t, apperror.ErrUpstream(nil).Message, d.Notice)
	require.Len(t, d.Errors, 1)

	again, err := f.svc.GetDashboard(ctx, sess)
	require.NoError(t, err)
	assert.Same(t, d, again)
	assert.Equal(t, 1, f.wallets.callCount())

	require.NoError(t, f.svc.Close(ctx))
	assert.Equal(t, []float64{1300}, f.history.records())
}

func TestRefreshDashboard_RateLimitNotice(t *testing.T) {
	f := newServiceFixture(t)
	f.wallets.failures = []entity.WalletFetchError{
		{WalletID: "w3", Message: "boom"},
		{WalletID: "w4", Message: "quota", RateLimited: true},
	}

	d, err := f.svc.RefreshDashboard(context.Background(), newSession(t, "bob"))
	require.NoError(t, err)
	assert.Equal(t, apperror.ErrRateLimited(nil).Message, d.Notice)
}

func TestRefreshDashboard_History(t *testing.T) {
	t.Run("not recorded for an empty portfolio", func(t *testing.T) {
		f := newServiceFixture(t)
		f.wallets.wallets = []entity.Wallet{{ID: "w1", Name: "Empty"}}
		f.wallets.failures = nil

		d, err := f.svc.RefreshDashboard(context.Background(), newSession(t, "carol"))
		require.NoError(t, err)
		assert.Empty(t, d.Notice)
		require.NoError(t, f.svc.Close(context.Background()))
		assert.Empty(t, f.history.records())
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		f := newServiceFixture(t)
		f.history.err = apperror.ErrUpstream(errors.New("down"))

		_, err := f.svc.RefreshDashboard(context.Background(), newSession(t, "dave"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Close(context.Background()))
		assert.Len(t, f.history.records(), 1)
	})

	t.Run("outlives the request context", func(t *testing.T) {
		f := newServiceFixture(t)
		ctx, cancel := context.WithCancel(context.Background())

		_, err := f.svc.RefreshDashboard(ctx, newSession(t, "erin"))
		require.NoError(t, err)
		cancel()
		require.NoError(t, f.svc.Close(context.Background()))
		assert.Len(t, f.history.records(), 1)
	})
}

func TestRefreshDashboard_ListFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.wallets.err = apperror.ErrSessionExpired()

	_, err := f.svc.GetDashboard(context.Background(), newSession(t, "frank"))
	assert.ErrorIs(t, err, apperror.ErrSessionExpired())
}

func TestListTokens(t *testing.T) {
	f := newServiceFixture(t)
	sess := newSession(t, "grace")

	page, err := f.svc.ListTokens(context.Background(), sess, entity.TokenQuery{Sort: entity.SortByValue, Direction: entity.SortDesc}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Tokens, 1)
	assert.Equal(t, "SOL", page.Tokens[0].Symbol)
	assert.InDelta(t, 200.0, page.Tokens[0].ValueUSD, 1e-9)

	page, err = f.svc.ListTokens(context.Background(), sess, entity.TokenQuery{Search: "usd"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Tokens, 1)
	assert.Equal(t, "USDC", page.Tokens[0].Symbol)
}

func TestExportCSV(t *testing.T) {
	f := newServiceFixture(t)
	var buf bytes.Buffer

	require.NoError(t, f.svc.ExportCSV(context.Background(), newSession(t, "heidi"), entity.TokenQuery{}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Symbole;Nom;Type;"))
	assert.True(t, strings.HasPrefix(lines[1], "SOL;Solana;NATIVE;2;200.00;"))
}

func TestGetDistribution(t *testing.T) {
	f := newServiceFixture(t)

	slices, err := f.svc.GetDistribution(context.Background(), newSession(t, "ivan"), false)
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "SOL", slices[0].Symbol)
	assert.InDelta(t, 200.0/300.0*100, slices[0].Percentage, 1e-9)
}

func TestForgetAndRefreshAll(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	alice := newSession(t, "alice")
	bob := newSession(t, "bob")

	_, err := f.svc.GetDashboard(ctx, alice)
	require.NoError(t, err)
	_, err = f.svc.GetDashboard(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 2, f.wallets.callCount())

	require.NoError(t, f.svc.RefreshAll(ctx))
	assert.Equal(t, 4, f.wallets.callCount())

	f.svc.Forget(alice)
	require.NoError(t, f.svc.RefreshAll(ctx))
	assert.Equal(t, 5, f.wallets.callCount())

	f.wallets.err = errors.New("backend down")
	assert.Error(t, f.svc.RefreshAll(ctx))

	// bob keeps the last good snapshot
	d, err := f.svc.GetDashboard(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, d.Tokens, 2)

	require.NoError(t, f.svc.Close(ctx))
}

func TestGetHistory(t *testing.T) {
	f := newServiceFixture(t)

	h, err := f.svc.GetHistory(context.Background(), newSession(t, "judy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, h.Labels)
}

// cancellingWalletAPI serves fixtureWallets and, while cancelOn is set, cancels
// the caller's context from inside the balance call for that wallet.
type cancellingWalletAPI struct {
	mu       sync.Mutex
	cancel   context.CancelFunc
	cancelOn string
}

func (a *cancellingWalletAPI) ListWallets(context.Context, *session.Session) ([]entity.Wallet, error) {
	wallets := fixtureWallets()[:2]
	for i := range wallets {
		wallets[i].Balance = nil
	}
	return wallets, nil
}

func (a *cancellingWalletAPI) GetBalance(ctx context.Context, _ *session.Session, id string) (*entity.Balance, error) {
	a.mu.Lock()
	cancel, cancelOn := a.cancel, a.cancelOn
	a.mu.Unlock()
	if cancel != nil && id == cancelOn {
		cancel()
		return nil, ctx.Err()
	}
	for _, w := range fixtureWallets() {
		if w.ID == id {
			return w.Balance, nil
		}
	}
	return nil, errors.New("unknown wallet")
}

func (a *cancellingWalletAPI) CreateWallet(context.Context, *session.Session, entity.NewWalletRequest) (*entity.Wallet, error) {
	return nil, errors.New("not implemented")
}

func (a *cancellingWalletAPI) DeleteWallet(context.Context, *session.Session, string) error {
	return errors.New("not implemented")
}

func (a *cancellingWalletAPI) cancelDuring(id string, cancel context.CancelFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelOn, a.cancel = id, cancel
}

func TestRefreshDashboard_CancelledRequestIsNotCached(t *testing.T) {
	api := &cancellingWalletAPI{}
	history := &fakeHistoryAPI{}
	svc := NewPortfolioService(
		provider.NewWalletProvider(api, logger.NewNop(), 1),
		&fakeBannedProvider{},
		history,
		valuation.NewEngine(logger.NewNop(), 0),
		logger.NewNop(),
		Options{SessionTTL: time.Minute, HistoryRecordTimeout: time.Second},
	)
	sess := newSession(t, "ivan")

	t.Run("first load", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		api.cancelDuring("w2", cancel)

		_, err := svc.RefreshDashboard(ctx, sess)
		require.ErrorIs(t, err, context.Canceled)

		api.cancelDuring("", nil)
		d, err := svc.GetDashboard(context.Background(), sess)
		require.NoError(t, err)
		assert.Empty(t, d.Errors)
		assert.InDelta(t, 1300, d.Summary.TotalUSD, 1e-9)
	})

	t.Run("previous snapshot survives a cancelled refresh", func(t *testing.T) {
		before, err := svc.GetDashboard(context.Background(), sess)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		api.cancelDuring("w2", cancel)
		err = svc.RefreshAll(ctx)
		require.ErrorIs(t, err, context.Canceled)

		api.cancelDuring("", nil)
		after, err := svc.GetDashboard(context.Background(), sess)
		require.NoError(t, err)
		assert.Same(t, before, after)
	})

	require.NoError(t, svc.Close(context.Background()))
	assert.Equal(t, []float64{1300}, history.records(), "only the completed load is recorded")
}
