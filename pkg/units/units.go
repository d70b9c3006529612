// Package units converts between on-chain integer representations (wei, basis
// points, Unix seconds) and the decimal values shown in the UI. Conversions to
// decimal are for display only; all on-chain arithmetic stays on *big.Int.
package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// SecondsPerDay is the exact factor between plan durations on-chain and days in the UI.
	SecondsPerDay = 86400

	// BasisPointDenominator is the fixed-point denominator: 10000 basis points = 100%.
	BasisPointDenominator = 10000

	// DefaultTokenDecimals is assumed when a token's decimals() call fails.
	DefaultTokenDecimals = 18
)

// ToWei scales a decimal token amount by 10^decimals, flooring any fractional
// wei. The integer part is preserved exactly at arbitrary precision.
func ToWei(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Floor().BigInt()
}

// FromWei converts a raw on-chain amount back to the token's decimal domain.
// Display only; never feed the result back into on-chain computation.
func FromWei(raw *big.Int, decimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -decimals)
}

// DaysToSeconds converts a UI duration to the contract's seconds representation.
func DaysToSeconds(days int64) int64 {
	return days * SecondsPerDay
}

// SecondsToDays converts a contract duration to days for display. The result
// is not round-tripped back on-chain without an exact re-multiplication.
func SecondsToDays(seconds int64) decimal.Decimal {
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(SecondsPerDay))
}

// PercentToBasisPoints converts a UI percentage to contract basis points,
// rounding to the nearest whole basis point.
func PercentToBasisPoints(percent decimal.Decimal) int64 {
	return percent.Shift(2).Round(0).IntPart()
}

// BasisPointsToPercent converts contract basis points to a UI percentage.
func BasisPointsToPercent(bp int64) decimal.Decimal {
	return decimal.NewFromInt(bp).Shift(-2)
}

// BasisPointsFromBig is a nil-safe accessor for basis-point values returned as
// uint256 by view calls.
func BasisPointsFromBig(bp *big.Int) int64 {
	if bp == nil {
		return 0
	}
	return bp.Int64()
}
