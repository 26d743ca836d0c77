package configloader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"portfolio_dashboard/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config/config.yaml"

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Logging   LoggingConfig   `yaml:"logging"`
	CORS      CORSConfig      `yaml:"cors"`
	Swagger   SwaggerConfig   `yaml:"swagger"`
	Export    ExportConfig    `yaml:"export"`
}

// ServerConfig holds the HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `yaml:"cookieSecure"`
}

// BackendConfig describes the portfolio backend API.
type BackendConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	Burst                int     `yaml:"burst"`
	MaxConnsPerHost      int     `yaml:"maxConnsPerHost"`
}

// PortfolioConfig tunes snapshot building and the market refresher.
type PortfolioConfig struct {
	MaxConcurrentBalanceFetches  int     `yaml:"maxConcurrentBalanceFetches"`
	MarketRefreshIntervalSeconds int     `yaml:"marketRefreshIntervalSeconds"`
	SessionTTLMinutes            int     `yaml:"sessionTTLMinutes"`
	HistoryRecordTimeoutMillis   int64   `yaml:"historyRecordTimeoutMillis"`
	NFTEthUSDRate                float64 `yaml:"nftEthUsdRate"`
	BannedTokensPageSize         int     `yaml:"bannedTokensPageSize"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	File        string `yaml:"file"`
	Development bool   `yaml:"development"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ExportConfig is used by portfolioctl export when no output path is given.
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// RequestTimeout returns the backend timeout as a duration.
func (c BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

func (c PortfolioConfig) RefreshInterval() time.Duration {
	return time.Duration(c.MarketRefreshIntervalSeconds) * time.Second
}

func (c PortfolioConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c PortfolioConfig) HistoryRecordTimeout() time.Duration {
	return time.Duration(c.HistoryRecordTimeoutMillis) * time.Millisecond
}

// Load reads the YAML configuration file from the given path, applies
// defaults and the BACKEND_URL / LOG_LEVEL environment overrides.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals raw YAML and applies defaults and overrides.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	cfg.Backend.BaseURL = utils.GetEnv("BACKEND_URL", cfg.Backend.BaseURL)
	cfg.Logging.Level = utils.GetEnv("LOG_LEVEL", cfg.Logging.Level)

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 120
	}

	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:3001"
		logrus.Infof("Backend.BaseURL not set, defaulting to %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.RequestTimeoutMillis <= 0 {
		cfg.Backend.RequestTimeoutMillis = 15000
		logrus.Infof("Backend.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Backend.RequestTimeoutMillis)
	}
	if cfg.Backend.RateLimitPerSecond <= 0 {
		cfg.Backend.RateLimitPerSecond = 20
	}
	if cfg.Backend.Burst <= 0 {
		cfg.Backend.Burst = 10
	}
	if cfg.Backend.MaxConnsPerHost <= 0 {
		cfg.Backend.MaxConnsPerHost = 64
	}

	if cfg.Portfolio.MaxConcurrentBalanceFetches <= 0 {
		cfg.Portfolio.MaxConcurrentBalanceFetches = 8
		logrus.Infof("Portfolio.MaxConcurrentBalanceFetches not set, defaulting to %d", cfg.Portfolio.MaxConcurrentBalanceFetches)
	}
	if cfg.Portfolio.MarketRefreshIntervalSeconds <= 0 {
		cfg.Portfolio.MarketRefreshIntervalSeconds = 60
		logrus.Infof("Portfolio.MarketRefreshIntervalSeconds not set, defaulting to %d s", cfg.Portfolio.MarketRefreshIntervalSeconds)
	}
	if cfg.Portfolio.SessionTTLMinutes <= 0 {
		cfg.Portfolio.SessionTTLMinutes = 60
	}
	if cfg.Portfolio.HistoryRecordTimeoutMillis <= 0 {
		cfg.Portfolio.HistoryRecordTimeoutMillis = 5000
	}
	if cfg.Portfolio.NFTEthUSDRate <= 0 {
		cfg.Portfolio.NFTEthUSDRate = 380.23
	}
	if cfg.Portfolio.BannedTokensPageSize <= 0 {
		cfg.Portfolio.BannedTokensPageSize = 100
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
	if cfg.Export.Directory == "" {
		cfg.Export.Directory = "."
	}
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend.baseURL must be an http(s) URL, got %q", c.Backend.BaseURL)
	}
	if !strings.HasPrefix(c.Server.Port, ":") && !strings.Contains(c.Server.Port, ":") {
		logrus.Warnf("Server.Port %q has no colon, prefixing it", c.Server.Port)
		c.Server.Port = ":" + c.Server.Port
	}
	return nil
}
