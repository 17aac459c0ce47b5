// Package provider defines the upstream rate-quote contracts consumed by the
// FX resolver.
package provider

import (
	"context"
	"encoding/json"
)

// SpotRate quotes a live rate for an ordered currency pair. Implementations
// are expected to bound the call with a timeout; a timeout counts as an
// ordinary failure.
type SpotRate interface {
	// FetchRate returns target-currency units per one unit of source currency.
	FetchRate(ctx context.Context, from, to string) (float64, error)
	// Name identifies the provider in logs and diagnostics.
	Name() string
}

// QuoteProbe is the parsed subset of a raw provider payload, used by the
// connectivity diagnostic endpoint.
type QuoteProbe struct {
	Success bool    `json:"success"`
	Rate    float64 `json:"rate"`
	Result  float64 `json:"result"`
}

// Diagnoser exposes a raw quote for provider connectivity checks.
type Diagnoser interface {
	// RawQuote performs a live quote and returns the unmodified provider
	// payload alongside the parsed subset.
	RawQuote(ctx context.Context, from, to string, amount float64) (json.RawMessage, *QuoteProbe, error)
}
