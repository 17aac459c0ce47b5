// Package fx holds the domain types for the FX conversion pipeline:
// cached spot rates, fee breakdowns and conversion results.
package fx

import "time"

// Source identifies which resolution tier produced a rate.
type Source string

const (
	// SourceCache means the rate came from the rate cache (fresh or stale).
	SourceCache Source = "cache"
	// SourceLiveAPI means the rate was fetched from the external provider.
	SourceLiveAPI Source = "live-api"
	// SourceFallback means the rate came from the static fallback table.
	SourceFallback Source = "fallback-mock"
)

// Rate is a spot rate for an ordered currency pair, as stored in the cache.
// Rate is expressed in target-currency units per one unit of source currency.
type Rate struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fees breaks down the remittance charge applied to a conversion.
// Fixed and Percentage are denominated in the source currency.
type Fees struct {
	Fixed                 float64
	Percentage            float64
	Total                 float64
	TotalInTargetCurrency float64
}

// Conversion is the computed outcome of converting an amount at a resolved
// rate, with fees applied. Monetary fields are rounded to 2 decimal places,
// FxRate to 5.
type Conversion struct {
	FromCurrency string
	FromAmount   float64
	ToCurrency   string
	ToAmount     float64
	FxRate       float64
	Fees         Fees
	FinalAmount  float64
}

// Metadata reports the provenance of a conversion for observability.
type Metadata struct {
	CacheHit  bool
	Source    Source
	Timestamp time.Time
}

// ConversionResult pairs a conversion with its provenance metadata. It is a
// derived value; ownership passes to the caller, which persists whatever
// subset it needs.
type ConversionResult struct {
	Conversion Conversion
	Metadata   Metadata
}

// RateQuote is the rate-only lookup result, without fee computation.
type RateQuote struct {
	From      string
	To        string
	Rate      float64
	CacheHit  bool
	Timestamp time.Time
}
