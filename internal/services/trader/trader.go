// Package trader submits market orders to trading venues.
package trader

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// quantities are floored to the venue's common spot precision before submission
const quantityPrecision = 4

// Trader submits a market order and reports the resulting fills.
type Trader interface {
	SubmitMarketOrder(ctx context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error)
}

func newClientOrderID() string {
	return fmt.Sprintf("mentio-%s", uuid.NewString())
}
