package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAggregateFills(t *testing.T) {
	fills := []Fill{
		{Price: decimal.RequireFromString("0.10"), Quantity: decimal.NewFromInt(500), Commission: decimal.RequireFromString("0.5"), CommissionAsset: "DOGE"},
		{Price: decimal.RequireFromString("0.12"), Quantity: decimal.NewFromInt(300), Commission: decimal.RequireFromString("0.3"), CommissionAsset: "DOGE"},
		{Price: decimal.RequireFromString("0.11"), Quantity: decimal.NewFromInt(200), Commission: decimal.RequireFromString("0.2"), CommissionAsset: "DOGE"},
	}

	agg, err := AggregateFills(fills)
	require.NoError(t, err)

	require.True(t, agg.PriceSum.Equal(decimal.RequireFromString("0.33")), "price sum: %s", agg.PriceSum)
	require.True(t, agg.AveragePrice.Equal(decimal.RequireFromString("0.11")), "average price: %s", agg.AveragePrice)
	require.True(t, agg.TotalQuantity.Equal(decimal.NewFromInt(1000)), "total quantity: %s", agg.TotalQuantity)
	require.True(t, agg.TotalCommission.Equal(decimal.RequireFromString("1")), "total commission: %s", agg.TotalCommission)
	require.Equal(t, "DOGE", agg.CommissionAsset)
}

func TestAggregateFillsSingle(t *testing.T) {
	fills := []Fill{
		{Price: decimal.RequireFromString("0.10"), Quantity: decimal.NewFromInt(500), Commission: decimal.RequireFromString("0.5"), CommissionAsset: "DOGE"},
	}

	agg, err := AggregateFills(fills)
	require.NoError(t, err)
	require.True(t, agg.AveragePrice.Equal(decimal.RequireFromString("0.10")))
	require.True(t, agg.PriceSum.Equal(agg.AveragePrice))
}

func TestAggregateFillsEmpty(t *testing.T) {
	_, err := AggregateFills(nil)
	require.ErrorIs(t, err, ErrEmptyFillSet)

	_, err = AggregateFills([]Fill{})
	require.ErrorIs(t, err, ErrEmptyFillSet)
}

func TestAggregateFillsCommissionAssetFromFirst(t *testing.T) {
	fills := []Fill{
		{Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1), Commission: decimal.Zero, CommissionAsset: "BNB"},
		{Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1), Commission: decimal.Zero, CommissionAsset: "DOGE"},
	}

	agg, err := AggregateFills(fills)
	require.NoError(t, err)
	require.Equal(t, "BNB", agg.CommissionAsset)
}

func TestErrorsWrapStaysMatchable(t *testing.T) {
	err := errors.Wrap(ErrEmptyFillSet, "sell leg")
	require.ErrorIs(t, err, ErrEmptyFillSet)
}
