package wallet

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// BybitWallet reads unified account balances from Bybit V5.
type BybitWallet struct {
	client *bybit.Client
}

func NewBybitWallet(client *bybit.Client) *BybitWallet {
	return &BybitWallet{client: client}
}

func (w *BybitWallet) GetFreeBalance(_ context.Context, asset string) (decimal.Decimal, error) {
	result, err := w.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5UNIFIED, []bybit.Coin{bybit.Coin(asset)})
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to get bybit wallet balance")
	}

	for _, account := range result.Result.List {
		for _, coin := range account.Coin {
			if string(coin.Coin) != asset {
				continue
			}
			free, err := decimal.NewFromString(coin.WalletBalance)
			if err != nil {
				return decimal.Zero, errors.Wrapf(err, "failed to parse %s balance", asset)
			}
			return free, nil
		}
	}

	return decimal.Zero, errors.Wrapf(domain.ErrAssetNotFound, "no %s balance on account", asset)
}
