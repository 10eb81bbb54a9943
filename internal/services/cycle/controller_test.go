package cycle

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/mentio/internal/domain"
	"go.uber.org/zap"
)

type stubPricer struct {
	price func(pair domain.Pair) (decimal.Decimal, error)
}

func (s *stubPricer) GetPrice(_ context.Context, pair domain.Pair) (decimal.Decimal, error) {
	return s.price(pair)
}

type stubWallet struct {
	balance func(asset string) (decimal.Decimal, error)
}

func (s *stubWallet) GetFreeBalance(_ context.Context, asset string) (decimal.Decimal, error) {
	return s.balance(asset)
}

type stubTrader struct {
	orders []submittedOrder
	submit func(side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error)
}

type submittedOrder struct {
	side     domain.Side
	quantity decimal.Decimal
}

func (s *stubTrader) SubmitMarketOrder(_ context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
	s.orders = append(s.orders, submittedOrder{side: side, quantity: quantity})
	return s.submit(side, quantity)
}

func fixedPrice(p string) *stubPricer {
	return &stubPricer{price: func(domain.Pair) (decimal.Decimal, error) {
		return decimal.RequireFromString(p), nil
	}}
}

func newTestController(t *testing.T, pricer *stubPricer, wallet *stubWallet, trader *stubTrader) *Controller {
	t.Helper()

	pair := domain.Pair{From: "DOGE", To: "USDT"}
	c, err := NewController(zap.NewNop(), pair, decimal.NewFromInt(50), time.Minute,
		pricer, wallet, trader, nil)
	require.NoError(t, err)

	return c
}

func TestFullCycle(t *testing.T) {
	// 100 USDT free, 50% of balance, buy at 0.10 -> 500 DOGE
	wallet := &stubWallet{balance: func(asset string) (decimal.Decimal, error) {
		switch asset {
		case "USDT":
			return decimal.NewFromInt(100), nil
		case "DOGE":
			return decimal.NewFromInt(500), nil
		}
		return decimal.Zero, errors.New("unexpected asset " + asset)
	}}
	trader := &stubTrader{submit: func(side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
		price := "0.10"
		if side == domain.SideSell {
			price = "0.12"
		}
		return &domain.OrderResult{
			Symbol:       "DOGEUSDT",
			OrigQuantity: quantity,
			Fills: []domain.Fill{{
				Price:           decimal.RequireFromString(price),
				Quantity:        quantity,
				Commission:      decimal.RequireFromString("0.5"),
				CommissionAsset: "DOGE",
			}},
		}, nil
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	err := c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1", Text: "doge to the moon"})
	require.NoError(t, err)
	require.Equal(t, domain.CycleHolding, c.State())
	require.NotNil(t, c.SellTimer())

	require.Len(t, trader.orders, 1)
	require.Equal(t, domain.SideBuy, trader.orders[0].side)
	require.True(t, trader.orders[0].quantity.Equal(decimal.NewFromInt(500)),
		"expected to buy 500, got %s", trader.orders[0].quantity.String())

	require.NoError(t, c.ExecuteSellLeg(context.Background()))
	require.Equal(t, domain.CycleIdle, c.State())
	require.Nil(t, c.SellTimer())

	require.Len(t, trader.orders, 2)
	require.Equal(t, domain.SideSell, trader.orders[1].side)
	require.True(t, trader.orders[1].quantity.Equal(decimal.NewFromInt(500)),
		"sell leg must liquidate the whole base balance")

	report := c.Snapshot().LastReport
	require.NotNil(t, report)
	require.Equal(t, "1", report.SignalID)
	require.True(t, report.ProfitPercent.Equal(decimal.NewFromInt(20)),
		"0.10 -> 0.12 is 20%%, got %s", report.ProfitPercent.String())
}

func TestBuyLegInsufficientBalance(t *testing.T) {
	wallet := &stubWallet{balance: func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(5), nil
	}}
	trader := &stubTrader{submit: func(domain.Side, decimal.Decimal) (*domain.OrderResult, error) {
		return nil, errors.New("must not be called")
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	err := c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1"})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.Empty(t, trader.orders, "no order must be submitted below the minimum trade value")
	require.Equal(t, domain.CycleIdle, c.State(), "aborted cycle must return to idle")
}

func TestBuyLegEmptyFillsAborts(t *testing.T) {
	wallet := &stubWallet{balance: func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(100), nil
	}}
	trader := &stubTrader{submit: func(_ domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
		return &domain.OrderResult{Symbol: "DOGEUSDT", OrigQuantity: quantity}, nil
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	err := c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1"})
	require.ErrorIs(t, err, domain.ErrEmptyFillSet)
	require.Equal(t, domain.CycleIdle, c.State())
	require.Nil(t, c.SellTimer(), "no sell may be scheduled for an aborted buy")
}

func TestOverlappingSignalRejected(t *testing.T) {
	wallet := &stubWallet{balance: func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(100), nil
	}}
	trader := &stubTrader{submit: func(_ domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
		return &domain.OrderResult{
			Symbol:       "DOGEUSDT",
			OrigQuantity: quantity,
			Fills: []domain.Fill{{
				Price:    decimal.RequireFromString("0.10"),
				Quantity: quantity,
			}},
		}, nil
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	require.NoError(t, c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1"}))

	err := c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "2"})
	require.ErrorIs(t, err, domain.ErrCycleInProgress)
	require.Len(t, trader.orders, 1, "second signal must not trade")

	snapshot := c.Snapshot()
	require.Equal(t, "holding", snapshot.State)
	require.Equal(t, "1", snapshot.SignalID, "open cycle must keep its original signal")
}

func TestSellLegZeroBalanceAborts(t *testing.T) {
	quote := decimal.NewFromInt(100)
	wallet := &stubWallet{balance: func(asset string) (decimal.Decimal, error) {
		if asset == "USDT" {
			return quote, nil
		}
		return decimal.Zero, nil
	}}
	trader := &stubTrader{submit: func(_ domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
		return &domain.OrderResult{
			Symbol:       "DOGEUSDT",
			OrigQuantity: quantity,
			Fills: []domain.Fill{{
				Price:    decimal.RequireFromString("0.10"),
				Quantity: quantity,
			}},
		}, nil
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	require.NoError(t, c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1"}))

	err := c.ExecuteSellLeg(context.Background())
	require.ErrorIs(t, err, domain.ErrAssetNotFound)
	require.Equal(t, domain.CycleIdle, c.State())
	require.Len(t, trader.orders, 1, "nothing to sell, no sell order")
}

func TestShutdownDisarmsSellTimer(t *testing.T) {
	wallet := &stubWallet{balance: func(string) (decimal.Decimal, error) {
		return decimal.NewFromInt(100), nil
	}}
	trader := &stubTrader{submit: func(_ domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error) {
		return &domain.OrderResult{
			Symbol:       "DOGEUSDT",
			OrigQuantity: quantity,
			Fills: []domain.Fill{{
				Price:    decimal.RequireFromString("0.10"),
				Quantity: quantity,
			}},
		}, nil
	}}

	c := newTestController(t, fixedPrice("0.10"), wallet, trader)

	require.NoError(t, c.ExecuteBuyLeg(context.Background(), domain.PostEvent{ID: "1"}))
	require.NotNil(t, c.SellTimer())

	c.Shutdown()
	require.Nil(t, c.SellTimer())
}

func TestNewControllerValidation(t *testing.T) {
	pair := domain.Pair{From: "DOGE", To: "USDT"}

	_, err := NewController(zap.NewNop(), pair, decimal.Zero, time.Minute, nil, nil, nil, nil)
	require.Error(t, err)

	_, err = NewController(zap.NewNop(), pair, decimal.NewFromInt(101), time.Minute, nil, nil, nil, nil)
	require.Error(t, err)

	_, err = NewController(zap.NewNop(), pair, decimal.NewFromInt(50), 0, nil, nil, nil, nil)
	require.Error(t, err)
}
