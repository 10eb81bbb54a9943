package trader

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// BinanceTrader submits spot market orders to Binance.
type BinanceTrader struct {
	client *binance.Client
	pair   domain.Pair
}

func NewBinanceTrader(client *binance.Client, pair domain.Pair) (*BinanceTrader, error) {
	return &BinanceTrader{client: client, pair: pair}, nil
}

func (t *BinanceTrader) SubmitMarketOrder(ctx context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
	quantity = quantity.RoundFloor(quantityPrecision)

	sideType := binance.SideTypeBuy
	if side == domain.SideSell {
		sideType = binance.SideTypeSell
	}

	// FULL response type is required to get per-fill prices and commissions
	res, err := t.client.NewCreateOrderService().Symbol(t.pair.Symbol()).
		Side(sideType).Type(binance.OrderTypeMarket).
		Quantity(quantity.String()).
		NewClientOrderID(newClientOrderID()).
		NewOrderRespType(binance.NewOrderRespTypeFULL).
		Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit binance market %s order for %s", side.String(), t.pair.String())
	}

	if res.Status != binance.OrderStatusTypeFilled && res.Status != binance.OrderStatusTypePartiallyFilled {
		return nil, errors.Wrapf(domain.ErrOrderRejected, "binance order %s finished with status %s", res.ClientOrderID, res.Status)
	}

	origQty, err := decimal.NewFromString(res.OrigQuantity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse original quantity")
	}

	fills := make([]domain.Fill, 0, len(res.Fills))
	for _, f := range res.Fills {
		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse fill price")
		}
		qty, err := decimal.NewFromString(f.Quantity)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse fill quantity")
		}
		commission, err := decimal.NewFromString(f.Commission)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse fill commission")
		}

		fills = append(fills, domain.Fill{
			Price:           price,
			Quantity:        qty,
			Commission:      commission,
			CommissionAsset: f.CommissionAsset,
		})
	}

	return &domain.OrderResult{
		Symbol:       res.Symbol,
		OrigQuantity: origQty,
		Fills:        fills,
	}, nil
}
