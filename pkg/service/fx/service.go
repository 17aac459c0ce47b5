// Package fx implements the FX conversion pipeline: tiered rate resolution
// with caching, fee computation and provenance reporting.
package fx

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/paystreet/fx/pkg/cache"
	"github.com/paystreet/fx/pkg/config"
	"github.com/paystreet/fx/pkg/currency"
	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
	"github.com/paystreet/fx/pkg/provider"
)

// Service resolves spot rates through the fallback chain and computes
// conversion results for the transaction-creation flow and the rate preview.
// The cache is injected so tests and deployments can choose their backend.
type Service struct {
	cache         cache.RateCache
	provider      provider.SpotRate
	registry      *currency.Registry
	fallbackRates map[string]float64
	cacheTTL      time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a Service with the given cache backend, rate provider and
// supported-currency registry.
func New(
	rateCache cache.RateCache,
	spotRate provider.SpotRate,
	registry *currency.Registry,
	cfg *config.ExchangeRate,
	logger *slog.Logger,
) *Service {
	return &Service{
		cache:         rateCache,
		provider:      spotRate,
		registry:      registry,
		fallbackRates: defaultFallbackRates,
		cacheTTL:      cfg.CacheTTL,
		logger:        logger,
		now:           time.Now,
	}
}

// Convert resolves a rate for the pair and applies the fee schedule.
// Returns fxdomain.ErrInvalidCurrencyCode or fxdomain.ErrInvalidAmount on bad
// input, fxdomain.ErrRateUnavailable when every resolution tier is exhausted.
func (s *Service) Convert(ctx context.Context, from, to string, amount float64) (*fxdomain.ConversionResult, error) {
	from, to, err := normalizePair(from, to)
	if err != nil {
		return nil, err
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fxdomain.ErrInvalidAmount
	}

	res, err := s.resolve(ctx, from, to)
	if err != nil {
		return nil, err
	}

	conv := computeConversion(amount, res.rate)
	conv.FromCurrency = from
	conv.ToCurrency = to

	return &fxdomain.ConversionResult{
		Conversion: conv,
		Metadata: fxdomain.Metadata{
			CacheHit:  res.cacheHit,
			Source:    res.source,
			Timestamp: s.now().UTC(),
		},
	}, nil
}

// GetRate resolves a rate for the pair without fee computation.
func (s *Service) GetRate(ctx context.Context, from, to string) (*fxdomain.RateQuote, error) {
	from, to, err := normalizePair(from, to)
	if err != nil {
		return nil, err
	}

	res, err := s.resolve(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &fxdomain.RateQuote{
		From:      from,
		To:        to,
		Rate:      round5(res.rate),
		CacheHit:  res.cacheHit,
		Timestamp: s.now().UTC(),
	}, nil
}

// ClearCache removes all cached rates and returns how many were removed.
// Exposed for admin and test use.
func (s *Service) ClearCache() (int, error) {
	return s.cache.Clear()
}

// SupportedCurrencies lists the currencies the product supports.
func (s *Service) SupportedCurrencies() []currency.Meta {
	return s.registry.ListSupported()
}

// resolve walks the fallback chain in order and returns the first hit.
func (s *Service) resolve(ctx context.Context, from, to string) (*resolution, error) {
	for _, source := range s.sources() {
		if res := source(ctx, from, to); res != nil {
			s.logger.Debug(
				"FX rate resolved",
				"from", from,
				"to", to,
				"rate", res.rate,
				"source", res.source,
				"stale", res.stale,
			)
			return res, nil
		}
	}
	return nil, fxdomain.ErrRateUnavailable
}

func normalizePair(from, to string) (string, string, error) {
	from = currency.NormalizeCode(from)
	to = currency.NormalizeCode(to)
	if err := currency.ValidateCode(from); err != nil {
		return "", "", err
	}
	if err := currency.ValidateCode(to); err != nil {
		return "", "", err
	}
	return from, to, nil
}
