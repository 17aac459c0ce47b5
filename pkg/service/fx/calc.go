package fx

import (
	"math"

	fxdomain "github.com/paystreet/fx/pkg/domain/fx"
)

// Fee schedule for remittance conversions. Both fees are denominated in the
// source currency.
const (
	fixedFee          = 10.0
	percentageFeeRate = 0.025
)

// computeConversion applies the fee schedule to a resolved rate. Pure
// arithmetic, no I/O; inputs are already validated.
//
// The gross amount is converted first, then the source-currency fee total is
// converted at the same rate and subtracted. This is not equivalent to
// discounting the source amount before conversion and must not be
// "simplified" into it.
func computeConversion(amount, rate float64) fxdomain.Conversion {
	convertedAmount := amount * rate

	percentageFee := amount * percentageFeeRate
	totalFees := fixedFee + percentageFee

	finalAmount := convertedAmount - totalFees*rate

	return fxdomain.Conversion{
		FromAmount: amount,
		ToAmount:   round2(convertedAmount),
		FxRate:     round5(rate),
		Fees: fxdomain.Fees{
			Fixed:                 fixedFee,
			Percentage:            round2(percentageFee),
			Total:                 round2(totalFees),
			TotalInTargetCurrency: round2(totalFees * rate),
		},
		FinalAmount: round2(finalAmount),
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round5 rounds half away from zero to 5 decimal places.
func round5(x float64) float64 {
	return math.Round(x*100000) / 100000
}
