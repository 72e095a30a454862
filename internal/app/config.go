package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// VentasAPIURL points at the service of record; every persistent fact
	// lives there.
	VentasAPIURL     string        `envconfig:"VENTAS_API_URL" default:"http://127.0.0.1:8081/api"`
	VentasAPITimeout time.Duration `envconfig:"VENTAS_API_TIMEOUT" default:"30s"`

	// TaxRate is the IGV rate applied to cart and quotation totals.
	TaxRate float64 `envconfig:"TAX_RATE" default:"0.18"`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:""`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
	CartSessionTTL  time.Duration `envconfig:"CART_SESSION_TTL" default:"12h"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.VentasAPIURL == "" {
		return nil, errors.New("ventas api url must be provided")
	}
	if cfg.TaxRate < 0 || cfg.TaxRate >= 1 {
		return nil, errors.New("tax rate must be in [0, 1)")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
