package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/provider"
	"portfolio_dashboard/internal/app/service"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/infrastructure/backend"
	"portfolio_dashboard/internal/infrastructure/configloader"
	networkdefinition "portfolio_dashboard/internal/infrastructure/network/definition"
	"portfolio_dashboard/internal/pkg/logger"
	"portfolio_dashboard/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	tokenEnv      = "PORTFOLIO_TOKEN"
	tokenFileName = "token"
)

// app holds what every subcommand needs. It is built lazily in PersistentPreRunE.
type app struct {
	cfg       *configloader.Config
	zap       *zap.Logger
	backend   port.BackendClient
	chains    port.ChainRegistry
	portfolio port.PortfolioService
	logger    port.Logger
	tokenPath string
}

func newApp(configPath, tokenPath string, verbose bool) (*app, error) {
	cfg, err := configloader.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	zapLogger, err := logger.New(level, "", true)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger := logger.NewSlogAdapter(zapLogger, logger.SlogLevel(level))

	client := backend.NewClient(backend.Options{
		BaseURL:            cfg.Backend.BaseURL,
		Timeout:            cfg.Backend.RequestTimeout(),
		RateLimitPerSecond: cfg.Backend.RateLimitPerSecond,
		Burst:              cfg.Backend.Burst,
		MaxConnsPerHost:    cfg.Backend.MaxConnsPerHost,
	}, zapLogger)
	engine := valuation.NewEngine(appLogger, cfg.Portfolio.NFTEthUSDRate)
	portfolio := service.NewPortfolioService(
		provider.NewWalletProvider(client, appLogger, cfg.Portfolio.MaxConcurrentBalanceFetches),
		provider.NewBannedTokenProvider(client, appLogger, cfg.Portfolio.BannedTokensPageSize, cfg.Portfolio.SessionTTL()),
		client,
		engine,
		appLogger,
		service.Options{
			SessionTTL:           cfg.Portfolio.SessionTTL(),
			HistoryRecordTimeout: cfg.Portfolio.HistoryRecordTimeout(),
		},
	)

	if tokenPath == "" {
		tokenPath = defaultTokenPath()
	}
	return &app{
		cfg:       cfg,
		zap:       zapLogger,
		backend:   client,
		chains:    networkdefinition.NewChainRegistry(appLogger),
		portfolio: portfolio,
		logger:    appLogger,
		tokenPath: tokenPath,
	}, nil
}

// session returns the stored backend session: $PORTFOLIO_TOKEN first, then the token file.
func (a *app) session() (*session.Session, error) {
	token := os.Getenv(tokenEnv)
	if token == "" {
		data, err := os.ReadFile(a.tokenPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("not signed in, run `portfolioctl login` or set %s", tokenEnv)
			}
			return nil, fmt.Errorf("failed to read token file %s: %w", a.tokenPath, err)
		}
		token = strings.TrimSpace(string(data))
	}
	sess, err := session.New(token)
	if err != nil {
		return nil, fmt.Errorf("stored session is not usable, sign in again: %w", err)
	}
	return sess, nil
}

func (a *app) saveToken(token string) error {
	return utils.WriteFileAtomic(a.tokenPath, []byte(token+"\n"))
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".portfolioctl", tokenFileName)
	}
	return filepath.Join(dir, "portfolioctl", tokenFileName)
}
