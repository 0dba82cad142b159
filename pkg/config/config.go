package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App  AppConfig
	Shop ShopConfig
	CORS CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Shop.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DEISISHOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"DEISISHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DEISISHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEISISHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ShopConfig points the storefront at the upstream shop API.
type ShopConfig struct {
	BaseURL        string        `envconfig:"DEISISHOP_SHOP_BASE_URL" default:"https://deisishop.pythonanywhere.com"`
	RequestTimeout time.Duration `envconfig:"DEISISHOP_SHOP_REQUEST_TIMEOUT" default:"10s"`
	FetchRetries   int           `envconfig:"DEISISHOP_SHOP_FETCH_RETRIES" default:"2"`
	FetchBackoff   time.Duration `envconfig:"DEISISHOP_SHOP_FETCH_BACKOFF" default:"250ms"`
}

func (s ShopConfig) validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("%s is required", EnvShopBaseURL)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvShopRequestTimeout)
	}
	if s.FetchRetries < 0 {
		return fmt.Errorf("%s must not be negative", EnvShopFetchRetries)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DEISISHOP_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
