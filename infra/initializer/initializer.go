// Package initializer builds the service dependency graph from configuration.
package initializer

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	infracache "github.com/paystreet/fx/infra/cache"
	infraprovider "github.com/paystreet/fx/infra/provider"
	"github.com/paystreet/fx/pkg/cache"
	"github.com/paystreet/fx/pkg/config"
	"github.com/paystreet/fx/pkg/currency"
	fxsvc "github.com/paystreet/fx/pkg/service/fx"
)

// Deps holds the initialized application dependencies.
type Deps struct {
	Logger    *slog.Logger
	RateCache cache.RateCache
	Provider  *infraprovider.ExchangeRateAPI
	FxService *fxsvc.Service
}

// InitializeDependencies wires the cache backend, rate provider and FX
// service from the loaded configuration.
func InitializeDependencies(cfg *config.AppConfig) (*Deps, error) {
	logger := setupLogger(&cfg.Log)

	var rateCache cache.RateCache
	if cfg.Redis.Addr != "" {
		rateCache = infracache.NewRedisRateCache(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix, logger)
		logger.Info("Using Redis rate cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	} else {
		rateCache = infracache.NewMemoryCache()
		logger.Info("Using in-memory rate cache")
	}

	prov := infraprovider.NewExchangeRateAPI(cfg.Exchange, logger)
	svc := fxsvc.New(rateCache, prov, currency.NewRegistry(), &cfg.Exchange, logger)

	return &Deps{
		Logger:    logger,
		RateCache: rateCache,
		Provider:  prov,
		FxService: svc,
	}, nil
}
