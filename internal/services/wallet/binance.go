package wallet

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// BinanceWallet reads spot account balances from Binance.
type BinanceWallet struct {
	client *binance.Client
}

func NewBinanceWallet(client *binance.Client) *BinanceWallet {
	return &BinanceWallet{client: client}
}

func (w *BinanceWallet) GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	account, err := w.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to get binance account balance")
	}

	for _, balance := range account.Balances {
		if balance.Asset != asset {
			continue
		}
		free, err := decimal.NewFromString(balance.Free)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "failed to parse %s balance", asset)
		}
		return free, nil
	}

	return decimal.Zero, errors.Wrapf(domain.ErrAssetNotFound, "no %s balance on account", asset)
}
