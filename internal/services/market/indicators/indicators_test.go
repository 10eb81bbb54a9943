package indicators

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func closesFromFloats(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestEMANotEnoughData(t *testing.T) {
	_, err := EMA(closesFromFloats([]float64{1, 2, 3}), 20)
	require.Error(t, err)
}

func TestRSINotEnoughData(t *testing.T) {
	_, err := RSI(closesFromFloats([]float64{1, 2, 3}), 14)
	require.Error(t, err)
}

func TestLatest(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i) // steadily rising market
	}

	snapshot, err := Latest(closesFromFloats(closes))
	require.NoError(t, err)

	require.True(t, snapshot.EMA20.GreaterThan(decimal.NewFromInt(100)))
	require.True(t, snapshot.EMA20.LessThan(decimal.NewFromInt(160)))

	// monotonically rising closes push RSI to its ceiling
	require.True(t, snapshot.RSI14.GreaterThan(decimal.NewFromInt(90)),
		"rising series must have high RSI, got %s", snapshot.RSI14.String())
}
