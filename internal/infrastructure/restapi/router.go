package restapi

import (
	"net/http"

	"portfolio_dashboard/internal/app/port"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// swaggerSpecURL is where the OpenAPI document is served from.
const swaggerSpecURL = "/docs/swagger.yaml"

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth      *AuthHandler
	Portfolio *PortfolioHandler
	Account   *AccountHandler
	Admin     *AdminHandler
}

// RouterOptions holds the HTTP surface settings.
type RouterOptions struct {
	AllowedOrigins  []string
	SwaggerEnabled  bool
	SwaggerPath     string
	SwaggerSpecFile string
	MetricsEnabled  bool
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(h Handlers, auth port.AuthAPI, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderRequestID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID, "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	router.Use(RequestLogger(logger))
	router.Use(Recovery(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	if opts.SwaggerEnabled && opts.SwaggerSpecFile != "" {
		router.StaticFile(swaggerSpecURL, opts.SwaggerSpecFile)
		router.GET(opts.SwaggerPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecURL)))
	}

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)
		v1.POST("/auth/register", h.Auth.Register)
		v1.GET("/chains", h.Account.ListChains)
	}

	authed := v1.Group("", SessionAuth())
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)

		authed.GET("/dashboard", h.Portfolio.GetDashboard)
		authed.POST("/dashboard/refresh", h.Portfolio.RefreshDashboard)
		authed.GET("/tokens", h.Portfolio.ListTokens)
		authed.GET("/wallets", h.Portfolio.ListWallets)
		authed.GET("/distribution", h.Portfolio.GetDistribution)
		authed.GET("/history", h.Portfolio.GetHistory)
		authed.GET("/export.csv", h.Portfolio.ExportCSV)

		authed.POST("/wallets", h.Account.CreateWallet)
		authed.DELETE("/wallets/:id", h.Account.DeleteWallet)
		authed.GET("/token-bans", h.Account.ListBannedTokens)
		authed.POST("/token-bans", h.Account.BanToken)
		authed.DELETE("/token-bans/:id", h.Account.UnbanToken)
		authed.GET("/profile", h.Account.GetProfile)
		authed.PUT("/profile", h.Account.UpdateProfile)
		authed.DELETE("/profile", h.Account.DeleteProfile)
		authed.POST("/keys", h.Account.SaveAPIKey)
		authed.DELETE("/keys/:service", h.Account.DeleteAPIKey)
	}

	admin := authed.Group("/admin", RequireAdmin(auth))
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.GET("/stats", h.Admin.GetSystemStats)
		admin.GET("/wallets", h.Admin.ListWallets)
		admin.GET("/history", h.Admin.ListHistory)
	}

	return router
}
