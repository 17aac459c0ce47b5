// Package cache defines the rate-cache contract used by the FX resolver.
package cache

import (
	"fmt"

	"github.com/paystreet/fx/pkg/domain/fx"
)

// RateCache stores spot rates keyed by ordered currency pair. Entries are
// overwritten unconditionally on Set and are never proactively expired;
// staleness is judged by the resolver at read time.
type RateCache interface {
	// Get returns the cached rate for a pair key, or (nil, nil) on a miss.
	Get(key string) (*fx.Rate, error)
	// Set stores a rate under a pair key, replacing any existing entry.
	Set(key string, rate *fx.Rate) error
	// Clear removes all entries and returns how many were removed.
	Clear() (int, error)
}

// PairKey builds the cache key for an ordered currency pair.
func PairKey(from, to string) string {
	return fmt.Sprintf("%s:%s", from, to)
}
