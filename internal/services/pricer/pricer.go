// Package pricer provides current spot prices for trading pairs.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// Pricer provides the current price of the base asset in the trade pair.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}
