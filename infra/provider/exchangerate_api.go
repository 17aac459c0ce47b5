// Package provider contains infrastructure implementations of the upstream
// rate-quote contracts.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/paystreet/fx/pkg/config"
	"github.com/paystreet/fx/pkg/provider"
)

// ExchangeRateAPI quotes spot rates from an exchangerate.host compatible
// convert endpoint. Calls are bounded by the configured HTTP timeout; a
// timeout is reported as an ordinary fetch failure.
type ExchangeRateAPI struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// convertResponse is the subset of the provider payload the resolver needs.
// Non-success responses carry Success=false rather than an error status.
type convertResponse struct {
	Success bool    `json:"success"`
	Result  float64 `json:"result"`
	Info    struct {
		Rate float64 `json:"rate"`
	} `json:"info"`
}

// NewExchangeRateAPI creates a provider from the exchange-rate config.
func NewExchangeRateAPI(cfg config.ExchangeRate, logger *slog.Logger) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		baseURL: cfg.ApiUrl,
		apiKey:  cfg.ApiKey,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// FetchRate fetches the current spot rate for a currency pair, quoting for
// one unit of the source currency.
func (p *ExchangeRateAPI) FetchRate(ctx context.Context, from, to string) (float64, error) {
	body, err := p.convert(ctx, from, to, 1)
	if err != nil {
		return 0, err
	}

	var apiResp convertResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if !apiResp.Success {
		return 0, fmt.Errorf("API returned unsuccessful response")
	}

	rate := apiResp.Info.Rate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("API returned invalid rate %v", rate)
	}

	p.logger.Info("FX API success", "from", from, "to", to, "rate", rate, "result", apiResp.Result)
	return rate, nil
}

// RawQuote performs a live quote and returns the unmodified provider payload
// plus the parsed subset, for connectivity diagnostics.
func (p *ExchangeRateAPI) RawQuote(ctx context.Context, from, to string, amount float64) (json.RawMessage, *provider.QuoteProbe, error) {
	body, err := p.convert(ctx, from, to, amount)
	if err != nil {
		return nil, nil, err
	}

	probe := &provider.QuoteProbe{
		Success: gjson.GetBytes(body, "success").Bool(),
		Rate:    gjson.GetBytes(body, "info.rate").Float(),
		Result:  gjson.GetBytes(body, "result").Float(),
	}
	return body, probe, nil
}

func (p *ExchangeRateAPI) convert(ctx context.Context, from, to string, amount float64) ([]byte, error) {
	url := fmt.Sprintf("%s/convert", p.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	if p.apiKey != "" {
		q.Set("access_key", p.apiKey)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// Name returns the provider's name.
func (p *ExchangeRateAPI) Name() string {
	return "exchangerate-api"
}

var (
	_ provider.SpotRate  = (*ExchangeRateAPI)(nil)
	_ provider.Diagnoser = (*ExchangeRateAPI)(nil)
)
