package fx

import "errors"

// Domain errors for the FX conversion pipeline.
var (
	// ErrRateUnavailable is returned when every resolution tier has been
	// exhausted for a currency pair.
	ErrRateUnavailable = errors.New("fx rate service unavailable and no fallback rate available")
	// ErrInvalidCurrencyCode is returned when a currency code does not match
	// the three-letter ISO 4217 format after normalization.
	ErrInvalidCurrencyCode = errors.New("invalid currency code format")
	// ErrInvalidAmount is returned when a conversion amount is not a positive
	// finite number.
	ErrInvalidAmount = errors.New("amount must be a positive number")
)
