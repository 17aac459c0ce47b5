package fx

import (
	"encoding/json"
	"time"

	"github.com/paystreet/fx/pkg/currency"
	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
	"github.com/paystreet/fx/pkg/provider"
)

// ConvertRequest is the request body for POST /api/fx/convert.
type ConvertRequest struct {
	From   string  `json:"from" validate:"required,len=3,alpha"`
	To     string  `json:"to" validate:"required,len=3,alpha"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// MoneyDTO is an amount tagged with its currency.
type MoneyDTO struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// FeesDTO breaks down the conversion charge.
type FeesDTO struct {
	Fixed                 float64 `json:"fixed"`
	Percentage            float64 `json:"percentage"`
	Total                 float64 `json:"total"`
	TotalInTargetCurrency float64 `json:"totalInTargetCurrency"`
}

// ConversionDTO mirrors the conversion shape consumed by the UI and the
// transaction-creation flow. Field names are load-bearing.
type ConversionDTO struct {
	From        MoneyDTO `json:"from"`
	To          MoneyDTO `json:"to"`
	FxRate      float64  `json:"fxRate"`
	Fees        FeesDTO  `json:"fees"`
	FinalAmount float64  `json:"finalAmount"`
}

// MetadataDTO reports rate provenance.
type MetadataDTO struct {
	CacheHit  bool   `json:"cacheHit"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

// ConvertResponse is the response body for POST /api/fx/convert.
type ConvertResponse struct {
	Conversion ConversionDTO `json:"conversion"`
	Metadata   MetadataDTO   `json:"metadata"`
}

// RateResponse is the response body for GET /api/fx/rate/:from/:to.
type RateResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Timestamp string  `json:"timestamp"`
	CacheHit  bool    `json:"cacheHit"`
}

// CurrenciesResponse is the response body for GET /api/fx/currencies.
type CurrenciesResponse struct {
	Currencies []currency.Meta `json:"currencies"`
}

// ClearCacheResponse is the response body for DELETE /api/fx/cache.
type ClearCacheResponse struct {
	Message        string `json:"message"`
	ClearedEntries int    `json:"clearedEntries"`
}

// TestResponse is the response body for GET /api/fx/test.
type TestResponse struct {
	Message     string               `json:"message"`
	APIResponse json.RawMessage      `json:"apiResponse"`
	Parsed      *provider.QuoteProbe `json:"parsed"`
}

func toConvertResponse(r *fxdomain.ConversionResult) *ConvertResponse {
	return &ConvertResponse{
		Conversion: ConversionDTO{
			From: MoneyDTO{
				Currency: r.Conversion.FromCurrency,
				Amount:   r.Conversion.FromAmount,
			},
			To: MoneyDTO{
				Currency: r.Conversion.ToCurrency,
				Amount:   r.Conversion.ToAmount,
			},
			FxRate: r.Conversion.FxRate,
			Fees: FeesDTO{
				Fixed:                 r.Conversion.Fees.Fixed,
				Percentage:            r.Conversion.Fees.Percentage,
				Total:                 r.Conversion.Fees.Total,
				TotalInTargetCurrency: r.Conversion.Fees.TotalInTargetCurrency,
			},
			FinalAmount: r.Conversion.FinalAmount,
		},
		Metadata: MetadataDTO{
			CacheHit:  r.Metadata.CacheHit,
			Timestamp: r.Metadata.Timestamp.Format(time.RFC3339),
			Source:    string(r.Metadata.Source),
		},
	}
}

func toRateResponse(q *fxdomain.RateQuote) *RateResponse {
	return &RateResponse{
		From:      q.From,
		To:        q.To,
		Rate:      q.Rate,
		Timestamp: q.Timestamp.Format(time.RFC3339),
		CacheHit:  q.CacheHit,
	}
}
