package port

import (
	"context"

	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/domain/entity"
)

// AuthAPI covers the backend authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.LoginResult, error)
	Register(ctx context.Context, reg entity.Registration) error
	Verify(ctx context.Context, sess *session.Session) (*entity.User, error)
}

// WalletAPI covers wallet registration and balance retrieval.
type WalletAPI interface {
	ListWallets(ctx context.Context, sess *session.Session) ([]entity.Wallet, error)
	GetBalance(ctx context.Context, sess *session.Session, walletID string) (*entity.Balance, error)
	CreateWallet(ctx context.Context, sess *session.Session, req entity.NewWalletRequest) (*entity.Wallet, error)
	DeleteWallet(ctx context.Context, sess *session.Session, walletID string) error
}

// HistoryAPI covers the portfolio-history persistence endpoints.
type HistoryAPI interface {
	GetHistory(ctx context.Context, sess *session.Session) (*entity.PortfolioHistory, error)
	RecordHistory(ctx context.Context, sess *session.Session, totalValue float64) error
}

// TokenBanAPI covers the per-user banned token list.
type TokenBanAPI interface {
	ListBannedTokens(ctx context.Context, sess *session.Session, query entity.BannedTokenQuery) (*entity.BannedTokenPage, error)
	BanToken(ctx context.Context, sess *session.Session, req entity.BanTokenRequest) (*entity.BannedToken, error)
	UnbanToken(ctx context.Context, sess *session.Session, id int) error
}

// ProfileAPI covers profile and third-party API key management.
type ProfileAPI interface {
	GetProfile(ctx context.Context, sess *session.Session) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, sess *session.Session, update entity.ProfileUpdate) error
	DeleteProfile(ctx context.Context, sess *session.Session) error
	SaveAPIKey(ctx context.Context, sess *session.Session, key entity.APIKey) error
	DeleteAPIKey(ctx context.Context, sess *session.Session, service string) error
}

// AdminAPI covers the admin-only endpoints. Non-array payloads are returned as empty slices.
type AdminAPI interface {
	ListUsers(ctx context.Context, sess *session.Session) ([]entity.User, error)
	GetSystemStats(ctx context.Context, sess *session.Session) (*entity.SystemStats, error)
	ListAllWallets(ctx context.Context, sess *session.Session) ([]entity.AdminWallet, error)
	ListAllHistory(ctx context.Context, sess *session.Session) ([]entity.AdminHistoryEntry, error)
}

// BackendClient is the full backend surface.
type BackendClient interface {
	AuthAPI
	WalletAPI
	HistoryAPI
	TokenBanAPI
	ProfileAPI
	AdminAPI
}
