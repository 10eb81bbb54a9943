// Package indicators computes the technical indicators logged alongside a
// buy. It wraps the cinar/indicator library.
package indicators

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Snapshot holds the indicator values at the most recent closed candle.
type Snapshot struct {
	// EMA20 is the 20-period Exponential Moving Average of close prices
	EMA20 decimal.Decimal
	// RSI14 is the 14-period Relative Strength Index of close prices
	RSI14 decimal.Decimal
}

// EMA calculates the Exponential Moving Average series for the given period.
func EMA(closes []decimal.Decimal, period int) ([]decimal.Decimal, error) {
	if len(closes) < period {
		return nil, errors.Errorf("not enough data points for EMA: need %d, got %d", period, len(closes))
	}

	ema := trend.NewEmaWithPeriod[float64](period)
	out := helper.ChanToSlice(ema.Compute(helper.SliceToChan(decimalsToFloat64(closes))))

	return float64ToDecimals(out), nil
}

// RSI calculates the Relative Strength Index series for the given period.
func RSI(closes []decimal.Decimal, period int) ([]decimal.Decimal, error) {
	if len(closes) < period+1 {
		return nil, errors.Errorf("not enough data points for RSI: need %d, got %d", period+1, len(closes))
	}

	rsi := momentum.NewRsiWithPeriod[float64](period)
	out := helper.ChanToSlice(rsi.Compute(helper.SliceToChan(decimalsToFloat64(closes))))

	return float64ToDecimals(out), nil
}

// Latest computes a Snapshot from close prices, taking the last value of each
// indicator series.
func Latest(closes []decimal.Decimal) (Snapshot, error) {
	ema20, err := EMA(closes, 20)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "failed to calculate EMA20")
	}

	rsi14, err := RSI(closes, 14)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "failed to calculate RSI14")
	}

	if len(ema20) == 0 || len(rsi14) == 0 {
		return Snapshot{}, errors.New("indicator series are empty")
	}

	return Snapshot{
		EMA20: ema20[len(ema20)-1],
		RSI14: rsi14[len(rsi14)-1],
	}, nil
}

func decimalsToFloat64(decimals []decimal.Decimal) []float64 {
	result := make([]float64, len(decimals))
	for i, d := range decimals {
		result[i], _ = d.Float64()
	}
	return result
}

func float64ToDecimals(floats []float64) []decimal.Decimal {
	result := make([]decimal.Decimal, len(floats))
	for i, f := range floats {
		result[i] = decimal.NewFromFloat(f)
	}
	return result
}
