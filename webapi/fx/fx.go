// Package fx exposes the FX conversion pipeline over HTTP.
package fx

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/paystreet/fx/pkg/provider"
	fxsvc "github.com/paystreet/fx/pkg/service/fx"
	"github.com/paystreet/fx/webapi/common"
)

// Routes registers HTTP routes for FX conversion operations.
func Routes(app *fiber.App, svc *fxsvc.Service, diag provider.Diagnoser, logger *slog.Logger) {
	fxGroup := app.Group("/api/fx")

	fxGroup.Post("/convert", Convert(svc, logger))
	fxGroup.Get("/currencies", ListCurrencies(svc))
	fxGroup.Get("/rate/:from/:to", GetRate(svc, logger))
	fxGroup.Get("/test", TestProvider(diag, logger))
	fxGroup.Delete("/cache", ClearCache(svc, logger))
}

// Convert returns a Fiber handler that resolves a rate and converts an amount.
// @Summary Convert an amount between currencies
// @Description Resolve an FX rate through the fallback chain, apply fees and return the final payable amount
// @Tags fx
// @Accept json
// @Produce json
// @Param conversion body ConvertRequest true "Conversion input"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/fx/convert [post]
func Convert(svc *fxsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConvertRequest](c)
		if err != nil {
			return nil // Error already written by BindAndValidate
		}

		result, err := svc.Convert(c.Context(), input.From, input.To, input.Amount)
		if err != nil {
			logger.Error("FX conversion failed", "from", input.From, "to", input.To, "error", err)
			return common.ProblemDetailsJSON(c, "Failed to convert currency", err, retrySuggestion(err))
		}

		return c.JSON(toConvertResponse(result))
	}
}

// GetRate returns a Fiber handler for the rate-only lookup.
// @Summary Get FX rate
// @Description Resolve the FX rate for a currency pair without fee computation
// @Tags fx
// @Produce json
// @Param from path string true "Source currency code"
// @Param to path string true "Target currency code"
// @Success 200 {object} RateResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 503 {object} common.ProblemDetails
// @Router /api/fx/rate/{from}/{to} [get]
func GetRate(svc *fxsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quote, err := svc.GetRate(c.Context(), c.Params("from"), c.Params("to"))
		if err != nil {
			logger.Error("FX rate lookup failed", "from", c.Params("from"), "to", c.Params("to"), "error", err)
			return common.ProblemDetailsJSON(c, "Failed to fetch FX rate", err, retrySuggestion(err))
		}

		return c.JSON(toRateResponse(quote))
	}
}

// ListCurrencies returns a Fiber handler listing supported currencies.
// @Summary List supported currencies
// @Description Get the static list of currencies the product supports
// @Tags fx
// @Produce json
// @Success 200 {object} CurrenciesResponse
// @Router /api/fx/currencies [get]
func ListCurrencies(svc *fxsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(CurrenciesResponse{Currencies: svc.SupportedCurrencies()})
	}
}

// ClearCache returns a Fiber handler that resets the rate cache.
// @Summary Clear the FX rate cache
// @Description Remove all cached rates; admin and test use
// @Tags fx
// @Produce json
// @Success 200 {object} ClearCacheResponse
// @Failure 500 {object} common.ProblemDetails
// @Router /api/fx/cache [delete]
func ClearCache(svc *fxsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cleared, err := svc.ClearCache()
		if err != nil {
			logger.Error("Clear cache failed", "error", err)
			return common.ProblemDetailsJSON(c, "Failed to clear cache", err)
		}

		return c.JSON(ClearCacheResponse{
			Message:        "FX rate cache cleared successfully",
			ClearedEntries: cleared,
		})
	}
}

// TestProvider returns a Fiber handler that checks provider connectivity with
// a raw USD to INR quote.
// @Summary Test the FX provider connection
// @Description Perform a raw live quote and return the provider payload with a parsed subset
// @Tags fx
// @Produce json
// @Success 200 {object} TestResponse
// @Failure 500 {object} common.ProblemDetails
// @Router /api/fx/test [get]
func TestProvider(diag provider.Diagnoser, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, probe, err := diag.RawQuote(c.Context(), "USD", "INR", 100)
		if err != nil {
			logger.Error("FX API test failed", "error", err)
			return common.ProblemDetailsJSON(c, "FX API test failed", err, fiber.StatusInternalServerError)
		}

		return c.JSON(TestResponse{
			Message:     "FX API test successful",
			APIResponse: raw,
			Parsed:      probe,
		})
	}
}

// retrySuggestion picks the user-facing hint for resolver failures.
func retrySuggestion(err error) string {
	if common.ErrorToStatusCode(err) == fiber.StatusServiceUnavailable {
		return "Please try again later or contact support"
	}
	return ""
}
