package fx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infracache "github.com/paystreet/fx/infra/cache"
	"github.com/paystreet/fx/pkg/cache"
	"github.com/paystreet/fx/pkg/config"
	"github.com/paystreet/fx/pkg/currency"
	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
)

// MockSpotRate is a mock rate provider for testing.
type MockSpotRate struct {
	mock.Mock
}

func (m *MockSpotRate) FetchRate(_ context.Context, from, to string) (float64, error) {
	args := m.Called(from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSpotRate) Name() string {
	return "mock-provider"
}

func newTestService(t *testing.T, provider *MockSpotRate) (*Service, *infracache.MemoryCache) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	memCache := infracache.NewMemoryCache()
	cfg := &config.ExchangeRate{CacheTTL: 15 * time.Minute}
	return New(memCache, provider, currency.NewRegistry(), cfg, logger), memCache
}

func TestConvert_LiveFetch_ComputesAndCaches(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(82.45, nil).Once()
	svc, memCache := newTestService(t, mockProvider)

	result, err := svc.Convert(context.Background(), "USD", "INR", 100)
	require.NoError(t, err)

	assert.Equal(t, "USD", result.Conversion.FromCurrency)
	assert.Equal(t, "INR", result.Conversion.ToCurrency)
	assert.InDelta(t, 100.0, result.Conversion.FromAmount, 0)
	assert.InDelta(t, 8245.00, result.Conversion.ToAmount, 0)
	assert.InDelta(t, 82.45, result.Conversion.FxRate, 0)
	assert.InDelta(t, 10.0, result.Conversion.Fees.Fixed, 0)
	assert.InDelta(t, 2.5, result.Conversion.Fees.Percentage, 0)
	assert.InDelta(t, 12.5, result.Conversion.Fees.Total, 0)
	assert.InDelta(t, 1030.63, result.Conversion.Fees.TotalInTargetCurrency, 0)
	assert.InDelta(t, 7214.38, result.Conversion.FinalAmount, 0)
	assert.False(t, result.Metadata.CacheHit)
	assert.Equal(t, fxdomain.SourceLiveAPI, result.Metadata.Source)

	// The live fetch must have stored a cache entry.
	entry, err := memCache.Get(cache.PairKey("USD", "INR"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.InDelta(t, 82.45, entry.Rate, 0)

	mockProvider.AssertExpectations(t)
}

func TestConvert_SecondCallHitsCache(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "EUR").Return(0.92, nil).Once()
	svc, _ := newTestService(t, mockProvider)

	first, err := svc.Convert(context.Background(), "USD", "EUR", 50)
	require.NoError(t, err)
	assert.False(t, first.Metadata.CacheHit)

	second, err := svc.Convert(context.Background(), "USD", "EUR", 50)
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, fxdomain.SourceCache, second.Metadata.Source)
	assert.InDelta(t, first.Conversion.FxRate, second.Conversion.FxRate, 0)

	mockProvider.AssertNumberOfCalls(t, "FetchRate", 1)
}

func TestConvert_FreshCacheSkipsProvider(t *testing.T) {
	mockProvider := new(MockSpotRate)
	svc, memCache := newTestService(t, mockProvider)

	require.NoError(t, memCache.Set(cache.PairKey("USD", "GBP"), &fxdomain.Rate{
		From:      "USD",
		To:        "GBP",
		Rate:      0.79,
		FetchedAt: time.Now(),
	}))

	result, err := svc.Convert(context.Background(), "USD", "GBP", 200)
	require.NoError(t, err)
	assert.True(t, result.Metadata.CacheHit)
	assert.Equal(t, fxdomain.SourceCache, result.Metadata.Source)
	assert.InDelta(t, 0.79, result.Conversion.FxRate, 0)

	mockProvider.AssertNumberOfCalls(t, "FetchRate", 0)
}

func TestConvert_ExpiredEntry_RefetchesAndOverwrites(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(83.00, nil).Once()
	svc, memCache := newTestService(t, mockProvider)

	require.NoError(t, memCache.Set(cache.PairKey("USD", "INR"), &fxdomain.Rate{
		From:      "USD",
		To:        "INR",
		Rate:      82.45,
		FetchedAt: time.Now().Add(-16 * time.Minute),
	}))

	result, err := svc.Convert(context.Background(), "USD", "INR", 100)
	require.NoError(t, err)
	assert.Equal(t, fxdomain.SourceLiveAPI, result.Metadata.Source)
	assert.False(t, result.Metadata.CacheHit)
	assert.InDelta(t, 83.00, result.Conversion.FxRate, 0)

	entry, err := memCache.Get(cache.PairKey("USD", "INR"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.InDelta(t, 83.00, entry.Rate, 0)
}

func TestConvert_StaleCacheFallback_ReportedAsCacheHit(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(0.0, errors.New("upstream timeout"))
	svc, memCache := newTestService(t, mockProvider)

	require.NoError(t, memCache.Set(cache.PairKey("USD", "INR"), &fxdomain.Rate{
		From:      "USD",
		To:        "INR",
		Rate:      81.90,
		FetchedAt: time.Now().Add(-2 * time.Hour),
	}))

	result, err := svc.Convert(context.Background(), "USD", "INR", 100)
	require.NoError(t, err)
	// A stale hit is reported exactly like a fresh one.
	assert.True(t, result.Metadata.CacheHit)
	assert.Equal(t, fxdomain.SourceCache, result.Metadata.Source)
	assert.InDelta(t, 81.90, result.Conversion.FxRate, 0)
}

func TestConvert_StaticTableFallback(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(0.0, errors.New("connection refused"))
	svc, memCache := newTestService(t, mockProvider)

	result, err := svc.Convert(context.Background(), "USD", "INR", 100)
	require.NoError(t, err)
	assert.Equal(t, fxdomain.SourceFallback, result.Metadata.Source)
	assert.False(t, result.Metadata.CacheHit)
	assert.InDelta(t, 82.45, result.Conversion.FxRate, 0)
	assert.InDelta(t, 7214.38, result.Conversion.FinalAmount, 0)

	// Static fallback rates are not written back to the cache.
	entry, err := memCache.Get(cache.PairKey("USD", "INR"))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestConvert_StaleCachePreferredOverStaticTable(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(0.0, errors.New("boom"))
	svc, memCache := newTestService(t, mockProvider)

	require.NoError(t, memCache.Set(cache.PairKey("USD", "INR"), &fxdomain.Rate{
		From:      "USD",
		To:        "INR",
		Rate:      80.00,
		FetchedAt: time.Now().Add(-24 * time.Hour),
	}))

	result, err := svc.Convert(context.Background(), "USD", "INR", 100)
	require.NoError(t, err)
	// The stale cached 80.00 wins over the static table's 82.45.
	assert.InDelta(t, 80.00, result.Conversion.FxRate, 0)
	assert.Equal(t, fxdomain.SourceCache, result.Metadata.Source)
}

func TestConvert_AllTiersExhausted(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "JPY").Return(0.0, errors.New("boom"))
	svc, _ := newTestService(t, mockProvider)

	result, err := svc.Convert(context.Background(), "USD", "JPY", 100)
	require.ErrorIs(t, err, fxdomain.ErrRateUnavailable)
	assert.Nil(t, result)
}

func TestConvert_InvalidInput(t *testing.T) {
	mockProvider := new(MockSpotRate)
	svc, _ := newTestService(t, mockProvider)

	_, err := svc.Convert(context.Background(), "USDX", "INR", 100)
	assert.ErrorIs(t, err, fxdomain.ErrInvalidCurrencyCode)

	_, err = svc.Convert(context.Background(), "USD", "IN", 100)
	assert.ErrorIs(t, err, fxdomain.ErrInvalidCurrencyCode)

	_, err = svc.Convert(context.Background(), "USD", "INR", 0)
	assert.ErrorIs(t, err, fxdomain.ErrInvalidAmount)

	_, err = svc.Convert(context.Background(), "USD", "INR", -5)
	assert.ErrorIs(t, err, fxdomain.ErrInvalidAmount)

	mockProvider.AssertNumberOfCalls(t, "FetchRate", 0)
}

func TestConvert_NormalizesCurrencyCodes(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(82.45, nil).Once()
	svc, _ := newTestService(t, mockProvider)

	result, err := svc.Convert(context.Background(), " usd ", "inr", 100)
	require.NoError(t, err)
	assert.Equal(t, "USD", result.Conversion.FromCurrency)
	assert.Equal(t, "INR", result.Conversion.ToCurrency)
}

func TestGetRate_RoundsToFiveDecimals(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "INR", "USD").Return(0.0123456789, nil).Once()
	svc, _ := newTestService(t, mockProvider)

	quote, err := svc.GetRate(context.Background(), "INR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 0.01235, quote.Rate, 0)
	assert.False(t, quote.CacheHit)
	assert.Equal(t, "INR", quote.From)
	assert.Equal(t, "USD", quote.To)
}

func TestGetRate_CacheHitOnSecondCall(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "EUR", "USD").Return(1.09, nil).Once()
	svc, _ := newTestService(t, mockProvider)

	first, err := svc.GetRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := svc.GetRate(context.Background(), "EUR", "USD")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)

	mockProvider.AssertNumberOfCalls(t, "FetchRate", 1)
}

func TestClearCache_ReturnsPriorSize(t *testing.T) {
	mockProvider := new(MockSpotRate)
	mockProvider.On("FetchRate", "USD", "INR").Return(82.45, nil)
	mockProvider.On("FetchRate", "USD", "EUR").Return(0.92, nil)
	svc, _ := newTestService(t, mockProvider)

	_, err := svc.GetRate(context.Background(), "USD", "INR")
	require.NoError(t, err)
	_, err = svc.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)

	cleared, err := svc.ClearCache()
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)

	// Both pairs must miss the cache again.
	quote, err := svc.GetRate(context.Background(), "USD", "INR")
	require.NoError(t, err)
	assert.False(t, quote.CacheHit)

	quote, err = svc.GetRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.False(t, quote.CacheHit)
}

func TestConvert_TTLBoundaryUsesInjectedClock(t *testing.T) {
	mockProvider := new(MockSpotRate)
	svc, memCache := newTestService(t, mockProvider)

	fetchedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	require.NoError(t, memCache.Set(cache.PairKey("GBP", "USD"), &fxdomain.Rate{
		From:      "GBP",
		To:        "USD",
		Rate:      1.27,
		FetchedAt: fetchedAt,
	}))

	// One nanosecond under the TTL is still fresh.
	svc.now = func() time.Time { return fetchedAt.Add(15*time.Minute - time.Nanosecond) }
	result, err := svc.Convert(context.Background(), "GBP", "USD", 100)
	require.NoError(t, err)
	assert.True(t, result.Metadata.CacheHit)

	// Exactly at the TTL the entry is stale; with the provider down, the
	// stale tier still returns it rather than the static table.
	mockProvider.On("FetchRate", "GBP", "USD").Return(0.0, errors.New("down"))
	svc.now = func() time.Time { return fetchedAt.Add(15 * time.Minute) }
	result, err = svc.Convert(context.Background(), "GBP", "USD", 100)
	require.NoError(t, err)
	assert.True(t, result.Metadata.CacheHit)
	assert.InDelta(t, 1.27, result.Conversion.FxRate, 0)
}
