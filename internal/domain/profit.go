package domain

import "github.com/shopspring/decimal"

// ProfitPercent returns the percentage difference of comparison against
// costBasis, rounded to two places for reporting.
func ProfitPercent(costBasis, comparison decimal.Decimal) (decimal.Decimal, error) {
	if costBasis.IsZero() {
		return decimal.Decimal{}, ErrZeroCostBasis
	}

	return comparison.Sub(costBasis).
		Div(costBasis).
		Mul(decimal.NewFromInt(percentageMultiplier)).
		Round(2), nil
}
