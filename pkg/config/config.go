// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server holds HTTP listener settings.
type Server struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Log holds logger settings.
type Log struct {
	Level      string `envconfig:"LEVEL" default:"info"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"paystreet-fx"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// ExchangeRate holds settings for the external rate-quote provider and the
// rate cache.
type ExchangeRate struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.exchangerate.host"`
	ApiKey      string        `envconfig:"API_KEY"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

// Redis holds settings for the optional Redis rate-cache backend. When Addr
// is empty the in-memory cache is used.
type Redis struct {
	Addr     string `envconfig:"ADDR"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
	Prefix   string `envconfig:"PREFIX" default:"fxrate:"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Server   Server       `envconfig:"SERVER"`
	Log      Log          `envconfig:"LOG"`
	Exchange ExchangeRate `envconfig:"EXCHANGE_RATE"`
	Redis    Redis        `envconfig:"REDIS"`
}

// Load reads configuration from the environment. Env files are loaded first
// when present; a missing file is not an error.
func Load(logger *slog.Logger, envFiles ...string) (*AppConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info(
		"App config loaded",
		"api_url", cfg.Exchange.ApiUrl,
		"cache_ttl", cfg.Exchange.CacheTTL,
		"http_timeout", cfg.Exchange.HTTPTimeout,
	)
	return &cfg, nil
}
