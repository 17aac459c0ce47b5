// Package currency provides the registry of currencies supported by the
// remittance product, plus currency-code normalization and validation.
package currency

import (
	"regexp"
	"strings"
	"sync"

	"github.com/paystreet/fx/pkg/domain/fx"
)

// DefaultCurrency is the fallback currency code (USD).
const DefaultCurrency = "USD"

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Meta holds display metadata for a supported currency.
type Meta struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Registry holds the currencies the remittance product supports, in a stable
// listing order.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	currencies map[string]Meta
}

// NewRegistry creates a registry pre-populated with the default currency set.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[string]Meta)}

	defaults := []Meta{
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "GBP", Name: "British Pound", Symbol: "£"},
		{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
		{Code: "MXN", Name: "Mexican Peso", Symbol: "$"},
		{Code: "CAD", Name: "Canadian Dollar", Symbol: "$"},
		{Code: "AUD", Name: "Australian Dollar", Symbol: "$"},
		{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
		{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
		{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	}
	for _, m := range defaults {
		r.Register(m)
	}

	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(m Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.currencies[m.Code]; !exists {
		r.order = append(r.order, m.Code)
	}
	r.currencies[m.Code] = m
}

// Get returns currency metadata for the given code.
func (r *Registry) Get(code string) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.currencies[code]
	return m, ok
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// ListSupported returns all supported currencies in registration order.
func (r *Registry) ListSupported() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Meta, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.currencies[code])
	}
	return out
}

// Count returns the total number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// NormalizeCode trims surrounding whitespace and uppercases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks that an already-normalized code matches the
// three-letter ISO 4217 format.
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return fx.ErrInvalidCurrencyCode
	}
	return nil
}
