package trader

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
	"github.com/vadiminshakov/mentio/internal/services/pricer"
)

// BybitTrader submits spot market orders to Bybit V5.
//
// Bybit quotes spot market buys in the quote currency, so buy quantities are
// converted from base units at the current ticker price before submission.
type BybitTrader struct {
	client *bybit.Client
	pricer pricer.Pricer
	pair   domain.Pair
}

func NewBybitTrader(client *bybit.Client, pair domain.Pair) (*BybitTrader, error) {
	return &BybitTrader{client: client, pricer: pricer.NewBybitPricer(client), pair: pair}, nil
}

func (t *BybitTrader) SubmitMarketOrder(ctx context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
	quantity = quantity.RoundFloor(quantityPrecision)
	origQty := quantity

	bybitSide := bybit.SideBuy
	if side == domain.SideSell {
		bybitSide = bybit.SideSell
	} else {
		price, err := t.pricer.GetPrice(ctx, t.pair)
		if err != nil {
			return nil, errors.Wrap(err, "failed to price bybit buy order")
		}
		quantity = quantity.Mul(price).RoundFloor(quantityPrecision)
	}

	symbol := bybit.SymbolV5(t.pair.Symbol())
	res, err := t.client.V5().Order().CreateOrder(bybit.V5CreateOrderParam{
		Category:    bybit.CategoryV5Spot,
		Symbol:      symbol,
		Side:        bybitSide,
		OrderType:   bybit.OrderTypeMarket,
		Qty:         quantity.String(),
		OrderLinkID: stringPtr(newClientOrderID()),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit bybit market %s order for %s", side.String(), t.pair.String())
	}
	if res.Result.OrderID == "" {
		return nil, errors.Wrapf(domain.ErrOrderRejected, "bybit returned no order id for %s %s", side.String(), t.pair.String())
	}

	fills, err := t.fetchFills(side, symbol, res.Result.OrderID)
	if err != nil {
		return nil, err
	}

	return &domain.OrderResult{
		Symbol:       t.pair.Symbol(),
		OrigQuantity: origQty,
		Fills:        fills,
	}, nil
}

// fetchFills materializes fills from the V5 execution list, which Bybit
// reports separately from order creation.
func (t *BybitTrader) fetchFills(side domain.Side, symbol bybit.SymbolV5, orderID string) ([]domain.Fill, error) {
	execs, err := t.client.V5().Execution().GetExecutionList(bybit.V5GetExecutionParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   &symbol,
		OrderID:  &orderID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch bybit executions for order %s", orderID)
	}

	// bybit spot fees are charged in the received asset
	commissionAsset := t.pair.From
	if side == domain.SideSell {
		commissionAsset = t.pair.To
	}

	fills := make([]domain.Fill, 0, len(execs.Result.List))
	for _, e := range execs.Result.List {
		price, err := decimal.NewFromString(e.ExecPrice)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse execution price")
		}
		qty, err := decimal.NewFromString(e.ExecQty)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse execution quantity")
		}
		fee, err := decimal.NewFromString(e.ExecFee)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse execution fee")
		}

		fills = append(fills, domain.Fill{
			Price:           price,
			Quantity:        qty,
			Commission:      fee,
			CommissionAsset: commissionAsset,
		})
	}

	return fills, nil
}

func stringPtr(s string) *string {
	return &s
}
