// Package wallet provides account balance lookups on trading venues.
package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// Wallet reports the free (unlocked) balance of an asset on the account.
type Wallet interface {
	GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error)
}
