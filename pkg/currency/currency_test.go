package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
)

func TestNewRegistry_DefaultCurrencies(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 10, r.Count())

	listed := r.ListSupported()
	require.Len(t, listed, 10)
	assert.Equal(t, "USD", listed[0].Code)
	assert.Equal(t, "US Dollar", listed[0].Name)

	for _, code := range []string{"USD", "EUR", "GBP", "INR", "MXN", "CAD", "AUD", "JPY", "CHF", "CNY"} {
		assert.True(t, r.IsSupported(code), code)
	}
	assert.False(t, r.IsSupported("BTC"))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	m, ok := r.Get("INR")
	require.True(t, ok)
	assert.Equal(t, "Indian Rupee", m.Name)
	assert.Equal(t, "₹", m.Symbol)

	_, ok = r.Get("XXX")
	assert.False(t, ok)
}

func TestRegistry_RegisterUpdatesWithoutDuplicating(t *testing.T) {
	r := NewRegistry()
	r.Register(Meta{Code: "USD", Name: "United States Dollar", Symbol: "$"})

	assert.Equal(t, 10, r.Count())
	m, _ := r.Get("USD")
	assert.Equal(t, "United States Dollar", m.Name)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "USD", NormalizeCode(" usd "))
	assert.Equal(t, "INR", NormalizeCode("inr"))
	assert.Equal(t, "EUR", NormalizeCode("EUR"))
}

func TestValidateCode(t *testing.T) {
	assert.NoError(t, ValidateCode("USD"))

	for _, bad := range []string{"", "US", "USDX", "us$", "123", "usd"} {
		assert.ErrorIs(t, ValidateCode(bad), fxdomain.ErrInvalidCurrencyCode, bad)
	}
}
