package domain

import (
	"github.com/shopspring/decimal"
)

// Fill is a single execution record of an order, as reported by the venue.
type Fill struct {
	Price           decimal.Decimal
	Quantity        decimal.Decimal
	Commission      decimal.Decimal
	CommissionAsset string
}

// AggregatedFill reduces the fills of one order leg to a single record.
//
// AveragePrice is the plain arithmetic mean of per-fill prices, not a
// volume-weighted average. PriceSum keeps the undivided sum because the
// profit calculation compares raw sums between the buy and sell legs.
type AggregatedFill struct {
	AveragePrice    decimal.Decimal
	PriceSum        decimal.Decimal
	TotalQuantity   decimal.Decimal
	TotalCommission decimal.Decimal
	CommissionAsset string
}

// AggregateFills reduces fills to an AggregatedFill. The commission asset is
// taken from the first fill; spot market orders commission in one asset.
func AggregateFills(fills []Fill) (AggregatedFill, error) {
	if len(fills) == 0 {
		return AggregatedFill{}, ErrEmptyFillSet
	}

	priceSum := decimal.Zero
	quantity := decimal.Zero
	commission := decimal.Zero
	for _, f := range fills {
		priceSum = priceSum.Add(f.Price)
		quantity = quantity.Add(f.Quantity)
		commission = commission.Add(f.Commission)
	}

	return AggregatedFill{
		AveragePrice:    priceSum.Div(decimal.NewFromInt(int64(len(fills)))),
		PriceSum:        priceSum,
		TotalQuantity:   quantity,
		TotalCommission: commission,
		CommissionAsset: fills[0].CommissionAsset,
	}, nil
}
