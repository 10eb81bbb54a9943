package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const percentageMultiplier = 100

// MinimumTradeValue is the smallest free quote balance a buy may be sized
// from, in quote currency units.
var MinimumTradeValue = decimal.NewFromInt(10)

// BuyQuantity sizes a market buy: the configured percent of the whole free
// quote balance at cycle start, converted to base units at the current price.
func BuyQuantity(quoteFree, percent, price decimal.Decimal) (decimal.Decimal, error) {
	if quoteFree.LessThan(MinimumTradeValue) {
		return decimal.Decimal{}, errors.Wrapf(ErrInsufficientBalance,
			"free balance %s is below minimum trade value %s", quoteFree.String(), MinimumTradeValue.String())
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, errors.Wrapf(ErrPriceUnavailable, "non-positive price %s", price.String())
	}

	return quoteFree.Mul(percent).Div(decimal.NewFromInt(percentageMultiplier)).Div(price), nil
}
