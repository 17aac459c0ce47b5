// Package common provides shared HTTP response helpers for the web API.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type       string `json:"type,omitempty"`       // A URI reference that identifies the problem type
	Title      string `json:"title"`                // Short, human-readable summary
	Status     int    `json:"status"`               // HTTP status code
	Detail     string `json:"detail,omitempty"`     // Human-readable explanation
	Instance   string `json:"instance,omitempty"`   // URI reference that identifies the specific occurrence
	Suggestion string `json:"suggestion,omitempty"` // Optional: user-facing remediation hint
	Errors     any    `json:"errors,omitempty"`     // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an error response following RFC 9457. The status
// is derived from err unless overridden.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: ErrorToStatusCode(err),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, opt := range opts {
		switch v := opt.(type) {
		case int:
			pd.Status = v
		case string:
			pd.Suggestion = v
		default:
			pd.Errors = v
		}
	}
	pd.Instance = c.OriginalURL()

	return c.Status(pd.Status).JSON(pd, "application/problem+json")
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, fxdomain.ErrInvalidCurrencyCode):
		return fiber.StatusBadRequest
	case errors.Is(err, fxdomain.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, fxdomain.ErrRateUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure the error response has already been
// written; callers should return nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}
