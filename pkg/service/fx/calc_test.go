package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeConversion_DocumentedExample(t *testing.T) {
	// 100 USD at 82.45: gross 8245.00, fees 12.50 charged in USD, converted
	// at the same rate (1030.625) and subtracted after conversion.
	conv := computeConversion(100, 82.45)

	assert.InDelta(t, 8245.00, conv.ToAmount, 0)
	assert.InDelta(t, 82.45, conv.FxRate, 0)
	assert.InDelta(t, 10.0, conv.Fees.Fixed, 0)
	assert.InDelta(t, 2.5, conv.Fees.Percentage, 0)
	assert.InDelta(t, 12.5, conv.Fees.Total, 0)
	assert.InDelta(t, 1030.63, conv.Fees.TotalInTargetCurrency, 0)
	assert.InDelta(t, 7214.38, conv.FinalAmount, 0)
}

func TestComputeConversion_FeesConvertedAfterGrossAmount(t *testing.T) {
	// Fees are converted at the same rate and subtracted from the gross
	// converted amount; rounding applies to the post-conversion terms.
	conv := computeConversion(1000, 0.92)

	assert.InDelta(t, 920.00, conv.ToAmount, 0)
	assert.InDelta(t, 25.0, conv.Fees.Percentage, 0)
	assert.InDelta(t, 35.0, conv.Fees.Total, 0)
	assert.InDelta(t, 32.2, conv.Fees.TotalInTargetCurrency, 0)
	assert.InDelta(t, 887.80, conv.FinalAmount, 0)
}

func TestComputeConversion_RoundingHalfUp(t *testing.T) {
	// 10.005 style halves round away from zero.
	assert.InDelta(t, 10.01, round2(10.005000001), 0)
	assert.InDelta(t, 0.01235, round5(0.0123452), 0)
	assert.InDelta(t, 82.45679, round5(82.456789), 0)
}

func TestComputeConversion_SmallAmountCanGoNegative(t *testing.T) {
	// Fees exceed the converted amount for tiny transfers; the pipeline does
	// not clamp, matching the documented formula.
	conv := computeConversion(5, 0.92)

	assert.InDelta(t, 4.60, conv.ToAmount, 0)
	assert.InDelta(t, 10.13, conv.Fees.Total, 0.001)
	assert.Less(t, conv.FinalAmount, 0.0)
}

func TestComputeConversion_FxRateRoundedToFiveDecimals(t *testing.T) {
	conv := computeConversion(100, 0.0123456789)
	assert.InDelta(t, 0.01235, conv.FxRate, 0)
}
