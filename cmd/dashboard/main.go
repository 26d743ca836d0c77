package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_dashboard/internal/app/provider"
	"portfolio_dashboard/internal/app/service"
	"portfolio_dashboard/internal/app/valuation"
	"portfolio_dashboard/internal/infrastructure/backend"
	"portfolio_dashboard/internal/infrastructure/configloader"
	networkdefinition "portfolio_dashboard/internal/infrastructure/network/definition"
	"portfolio_dashboard/internal/infrastructure/restapi"
	"portfolio_dashboard/internal/pkg/logger"
	"portfolio_dashboard/internal/pkg/metrics"
	"portfolio_dashboard/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	swaggerSpecFile = "docs/swagger.yaml"
)

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", configloader.DefaultPath)
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	logger.InstallSlogDefault(zapLogger)
	appLogger := logger.NewSlogAdapter(zapLogger, logger.SlogLevel(cfg.Logging.Level))
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath), zap.String("backend", cfg.Backend.BaseURL))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.MustRegisterMetrics()

	backendClient := backend.NewClient(backend.Options{
		BaseURL:            cfg.Backend.BaseURL,
		Timeout:            cfg.Backend.RequestTimeout(),
		RateLimitPerSecond: cfg.Backend.RateLimitPerSecond,
		Burst:              cfg.Backend.Burst,
		MaxConnsPerHost:    cfg.Backend.MaxConnsPerHost,
	}, zapLogger)
	chainRegistry := networkdefinition.NewChainRegistry(appLogger)
	zapLogger.Info("Chain registry initialized", zap.Int("chains", len(chainRegistry.GetAllChains())))

	walletProvider := provider.NewWalletProvider(backendClient, appLogger, cfg.Portfolio.MaxConcurrentBalanceFetches)
	bannedProvider := provider.NewBannedTokenProvider(backendClient, appLogger, cfg.Portfolio.BannedTokensPageSize, cfg.Portfolio.SessionTTL())
	engine := valuation.NewEngine(appLogger, cfg.Portfolio.NFTEthUSDRate)

	portfolioSvc := service.NewPortfolioService(walletProvider, bannedProvider, backendClient, engine, appLogger, service.Options{
		SessionTTL:           cfg.Portfolio.SessionTTL(),
		HistoryRecordTimeout: cfg.Portfolio.HistoryRecordTimeout(),
	})
	zapLogger.Info("PortfolioService initialized")

	// Фоновое обновление рыночных данных для активных сессий
	refresherCtx, stopRefresher := context.WithCancel(context.Background())
	refresher := service.NewMarketRefresher(portfolioSvc, appLogger, cfg.Portfolio.RefreshInterval())
	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		refresher.Run(refresherCtx)
	}()

	handlers := restapi.Handlers{
		Auth:      restapi.NewAuthHandler(backendClient, portfolioSvc, bannedProvider, cfg.Server.CookieSecure),
		Portfolio: restapi.NewPortfolioHandler(portfolioSvc),
		Account:   restapi.NewAccountHandler(backendClient, chainRegistry, bannedProvider, portfolioSvc),
		Admin:     restapi.NewAdminHandler(backendClient),
	}
	router := restapi.SetupRouter(handlers, backendClient, restapi.RouterOptions{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		SwaggerEnabled:  cfg.Swagger.Enabled,
		SwaggerPath:     cfg.Swagger.Path,
		SwaggerSpecFile: swaggerSpecFile,
		MetricsEnabled:  true,
	}, zapLogger)
	if cfg.Swagger.Enabled {
		zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path+"/index.html"))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	stopRefresher()
	<-refresherDone

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := portfolioSvc.Close(ctxShutdown); err != nil {
		zapLogger.Warn("Pending history writes abandoned", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
