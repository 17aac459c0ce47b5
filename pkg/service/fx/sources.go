package fx

import (
	"context"

	"github.com/paystreet/fx/pkg/cache"
	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
)

// resolution is the outcome of one rate-source strategy. stale is internal
// only: a stale cache hit is reported to callers exactly like a fresh one.
type resolution struct {
	rate     float64
	source   fxdomain.Source
	cacheHit bool
	stale    bool
}

// rateSource is one tier of the fallback chain. It returns nil on a miss;
// failures inside a tier are absorbed and logged, never propagated.
type rateSource func(ctx context.Context, from, to string) *resolution

// sources returns the fallback chain in resolution order. The first tier to
// produce a resolution wins; no retries happen within a tier.
func (s *Service) sources() []rateSource {
	return []rateSource{
		s.freshCache,
		s.liveFetch,
		s.staleCache,
		s.staticTable,
	}
}

// freshCache hits when a cached entry exists and is younger than the TTL.
func (s *Service) freshCache(_ context.Context, from, to string) *resolution {
	entry, err := s.cache.Get(cache.PairKey(from, to))
	if err != nil {
		s.logger.Warn("Rate cache read failed", "from", from, "to", to, "error", err)
		return nil
	}
	if entry == nil || s.now().Sub(entry.FetchedAt) >= s.cacheTTL {
		return nil
	}
	return &resolution{rate: entry.Rate, source: fxdomain.SourceCache, cacheHit: true}
}

// liveFetch asks the external provider and caches a successful quote,
// overwriting any existing entry for the pair regardless of freshness.
func (s *Service) liveFetch(ctx context.Context, from, to string) *resolution {
	rate, err := s.provider.FetchRate(ctx, from, to)
	if err != nil {
		s.logger.Warn("FX API error", "provider", s.provider.Name(), "from", from, "to", to, "error", err)
		return nil
	}

	if err := s.cache.Set(cache.PairKey(from, to), &fxdomain.Rate{
		From:      from,
		To:        to,
		Rate:      rate,
		FetchedAt: s.now(),
	}); err != nil {
		s.logger.Warn("Failed to cache fx rate", "from", from, "to", to, "error", err)
	}

	return &resolution{rate: rate, source: fxdomain.SourceLiveAPI}
}

// staleCache hits when any cached entry exists for the pair, however old.
// Reached only after the live fetch has failed.
func (s *Service) staleCache(_ context.Context, from, to string) *resolution {
	entry, err := s.cache.Get(cache.PairKey(from, to))
	if err != nil || entry == nil {
		return nil
	}

	s.logger.Info("Using expired cached rate as fallback", "from", from, "to", to, "fetched_at", entry.FetchedAt)
	return &resolution{rate: entry.Rate, source: fxdomain.SourceCache, cacheHit: true, stale: true}
}

// staticTable hits when the pair is in the fixed table of known rates.
func (s *Service) staticTable(_ context.Context, from, to string) *resolution {
	rate, ok := s.fallbackRates[cache.PairKey(from, to)]
	if !ok {
		return nil
	}

	s.logger.Info("Using mock rate as fallback", "from", from, "to", to, "rate", rate)
	return &resolution{rate: rate, source: fxdomain.SourceFallback}
}

// defaultFallbackRates is the static table for common corridors, used as the
// last resort when both the provider and the cache come up empty.
var defaultFallbackRates = map[string]float64{
	"USD:INR": 82.45,
	"USD:EUR": 0.92,
	"USD:GBP": 0.79,
	"USD:MXN": 17.0,
	"USD:CAD": 1.35,
	"EUR:USD": 1.09,
	"GBP:USD": 1.27,
	"INR:USD": 0.012,
	"MXN:USD": 0.059,
}
