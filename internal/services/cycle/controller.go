// Package cycle runs the buy-then-sell trade cycle triggered by a signal.
package cycle

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
	"go.uber.org/zap"
)

type pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type wallet interface {
	GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error)
}

type trader interface {
	SubmitMarketOrder(ctx context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error)
}

// entryContexter supplies an optional market snapshot logged with the buy
// report. It never influences the trade decision.
type entryContexter interface {
	EntryContext(ctx context.Context, pair domain.Pair) ([]zap.Field, error)
}

// Report is the outcome of one completed trade cycle.
type Report struct {
	SignalID        string          `json:"signal_id"`
	Pair            string          `json:"pair"`
	BoughtQuantity  decimal.Decimal `json:"bought_quantity"`
	BuyAvgPrice     decimal.Decimal `json:"buy_avg_price"`
	BuyCommission   decimal.Decimal `json:"buy_commission"`
	SoldQuantity    decimal.Decimal `json:"sold_quantity"`
	SellAvgPrice    decimal.Decimal `json:"sell_avg_price"`
	SellCommission  decimal.Decimal `json:"sell_commission"`
	CommissionAsset string          `json:"commission_asset"`
	ProfitPercent   decimal.Decimal `json:"profit_percent"`
	ClosedAt        time.Time       `json:"closed_at"`
}

// Status is a read-only snapshot for the status server.
type Status struct {
	Pair       string  `json:"pair"`
	State      string  `json:"state"`
	SignalID   string  `json:"signal_id,omitempty"`
	LastReport *Report `json:"last_report,omitempty"`
}

// Controller owns the trade cycle state machine. All trade methods must be
// called from a single goroutine; Snapshot may be called from anywhere.
type Controller struct {
	pair       domain.Pair
	useBalance decimal.Decimal
	timeToSell time.Duration

	pricer pricer
	wallet wallet
	trader trader
	market entryContexter // optional, may be nil

	l *zap.Logger

	mu         sync.RWMutex
	cycle      *domain.TradeCycle
	lastReport *Report

	sellTimer *time.Timer
	sellC     <-chan time.Time
}

// NewController validates sizing parameters and builds a controller in Idle
// state.
func NewController(l *zap.Logger, pair domain.Pair, useBalance decimal.Decimal, timeToSell time.Duration,
	pricer pricer, wallet wallet, trader trader, market entryContexter) (*Controller, error) {

	if useBalance.LessThanOrEqual(decimal.Zero) || useBalance.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.Errorf("useBalance must be in (0, 100], got %s", useBalance.String())
	}
	if timeToSell <= 0 {
		return nil, errors.Errorf("timeToSell must be positive, got %s", timeToSell)
	}

	return &Controller{
		pair:       pair,
		useBalance: useBalance,
		timeToSell: timeToSell,
		pricer:     pricer,
		wallet:     wallet,
		trader:     trader,
		market:     market,
		l:          l.With(zap.String("pair", pair.String())),
	}, nil
}

// State returns the current cycle state; Idle when no cycle is open.
func (c *Controller) State() domain.CycleState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cycle == nil {
		return domain.CycleIdle
	}
	return c.cycle.State
}

// Snapshot returns the current state and the last completed cycle report.
func (c *Controller) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := Status{
		Pair:       c.pair.String(),
		State:      domain.CycleIdle.String(),
		LastReport: c.lastReport,
	}
	if c.cycle != nil {
		status.State = c.cycle.State.String()
		status.SignalID = c.cycle.SignalID
	}
	return status
}

// SellTimer returns the pending sell channel. It is nil while nothing is
// held, which blocks forever in a select.
func (c *Controller) SellTimer() <-chan time.Time {
	return c.sellC
}

// ExecuteBuyLeg opens a cycle for a qualifying signal: sizes a market buy
// from the free quote balance, submits it, and schedules the sell. Signals
// arriving while a cycle is open are rejected with ErrCycleInProgress.
// Any collaborator failure aborts the cycle; nothing is retried or rolled
// back.
func (c *Controller) ExecuteBuyLeg(ctx context.Context, signal domain.PostEvent) error {
	if state := c.State(); state != domain.CycleIdle {
		return errors.Wrapf(domain.ErrCycleInProgress, "cycle is %s, signal %s dropped", state.String(), signal.ID)
	}

	c.setCycle(&domain.TradeCycle{
		Pair:     c.pair,
		SignalID: signal.ID,
		State:    domain.CycleBuyPending,
		OpenedAt: time.Now(),
	})

	price, err := c.pricer.GetPrice(ctx, c.pair)
	if err != nil {
		return c.abort(errors.Wrapf(err, "pricer failed for pair %s", c.pair.String()))
	}

	quoteFree, err := c.wallet.GetFreeBalance(ctx, c.pair.To)
	if err != nil {
		return c.abort(errors.Wrapf(err, "failed to get %s balance", c.pair.To))
	}

	quantity, err := domain.BuyQuantity(quoteFree, c.useBalance, price)
	if err != nil {
		return c.abort(err)
	}

	res, err := c.trader.SubmitMarketOrder(ctx, domain.SideBuy, quantity)
	if err != nil {
		return c.abort(errors.Wrapf(err, "buy failed for pair %s with quantity %s", c.pair.String(), quantity.String()))
	}

	agg, err := domain.AggregateFills(res.Fills)
	if err != nil {
		return c.abort(errors.Wrapf(err, "buy order %s returned no fills", res.Symbol))
	}

	c.mu.Lock()
	c.cycle.BuyAggregate = agg
	c.cycle.State = domain.CycleHolding
	c.mu.Unlock()

	c.l.Info("bought",
		zap.String("signal_id", signal.ID),
		zap.String("amount", agg.TotalQuantity.String()),
		zap.String("avg_price", agg.AveragePrice.String()),
		zap.String("commission", agg.TotalCommission.String()),
		zap.String("commission_asset", agg.CommissionAsset),
		zap.Duration("sell_in", c.timeToSell))

	c.logEntryContext(ctx)

	c.sellTimer = time.NewTimer(c.timeToSell)
	c.sellC = c.sellTimer.C

	return nil
}

// ExecuteSellLeg closes the held cycle: sells the entire free base balance
// at market and reports profit against the buy leg.
//
// The sold quantity is whatever the account holds at sell time, not the
// bought amount; external balance changes between the legs are sold along.
func (c *Controller) ExecuteSellLeg(ctx context.Context) error {
	if state := c.State(); state != domain.CycleHolding {
		return errors.Errorf("sell leg requested in state %s", state.String())
	}

	c.disarmSellTimer()

	c.mu.Lock()
	c.cycle.State = domain.CycleSellPending
	buyAggregate := c.cycle.BuyAggregate
	signalID := c.cycle.SignalID
	c.mu.Unlock()

	price, err := c.pricer.GetPrice(ctx, c.pair)
	if err != nil {
		return c.abort(errors.Wrapf(err, "pricer failed for pair %s", c.pair.String()))
	}

	baseFree, err := c.wallet.GetFreeBalance(ctx, c.pair.From)
	if err != nil {
		return c.abort(errors.Wrapf(err, "failed to get %s balance", c.pair.From))
	}
	if baseFree.LessThanOrEqual(decimal.Zero) {
		return c.abort(errors.Wrapf(domain.ErrAssetNotFound, "no free %s balance to sell", c.pair.From))
	}

	res, err := c.trader.SubmitMarketOrder(ctx, domain.SideSell, baseFree)
	if err != nil {
		return c.abort(errors.Wrapf(err, "sell failed for pair %s with quantity %s", c.pair.String(), baseFree.String()))
	}

	agg, err := domain.AggregateFills(res.Fills)
	if err != nil {
		return c.abort(errors.Wrapf(err, "sell order %s returned no fills", res.Symbol))
	}

	// profit compares the raw fill price sums of the two legs
	profit, err := domain.ProfitPercent(buyAggregate.PriceSum, agg.PriceSum)
	if err != nil {
		return c.abort(errors.Wrap(err, "failed to compute profit"))
	}

	report := &Report{
		SignalID:        signalID,
		Pair:            c.pair.String(),
		BoughtQuantity:  buyAggregate.TotalQuantity,
		BuyAvgPrice:     buyAggregate.AveragePrice,
		BuyCommission:   buyAggregate.TotalCommission,
		SoldQuantity:    agg.TotalQuantity,
		SellAvgPrice:    agg.AveragePrice,
		SellCommission:  agg.TotalCommission,
		CommissionAsset: agg.CommissionAsset,
		ProfitPercent:   profit,
		ClosedAt:        time.Now(),
	}

	c.mu.Lock()
	c.cycle.SellAggregate = &agg
	c.cycle.State = domain.CycleClosed
	c.lastReport = report
	c.cycle = nil // cycle is done, ready for the next signal
	c.mu.Unlock()

	c.l.Info("sold",
		zap.String("signal_id", signalID),
		zap.String("amount", agg.TotalQuantity.String()),
		zap.String("avg_price", agg.AveragePrice.String()),
		zap.String("market_price", price.String()),
		zap.String("commission", agg.TotalCommission.String()),
		zap.String("commission_asset", agg.CommissionAsset),
		zap.String("profit_percent", profit.String()))

	return nil
}

// Shutdown cancels a pending sell timer. The held position is left as is;
// a fresh process must be pointed at it manually.
func (c *Controller) Shutdown() {
	if c.sellC == nil {
		return
	}

	c.disarmSellTimer()
	c.l.Warn("pending sell cancelled by shutdown, position is still held",
		zap.String("state", c.State().String()))
}

func (c *Controller) setCycle(cycle *domain.TradeCycle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycle = cycle
}

// abort terminates the current cycle, logs the cause, and returns the
// controller to Idle so a fresh signal can start over.
func (c *Controller) abort(cause error) error {
	c.disarmSellTimer()

	c.mu.Lock()
	signalID := ""
	if c.cycle != nil {
		c.cycle.State = domain.CycleAborted
		signalID = c.cycle.SignalID
	}
	c.cycle = nil
	c.mu.Unlock()

	c.l.Error("trade cycle aborted",
		zap.String("signal_id", signalID),
		zap.Error(cause))

	return cause
}

func (c *Controller) disarmSellTimer() {
	if c.sellTimer != nil {
		c.sellTimer.Stop()
	}
	c.sellTimer = nil
	c.sellC = nil
}

func (c *Controller) logEntryContext(ctx context.Context) {
	if c.market == nil {
		return
	}

	fields, err := c.market.EntryContext(ctx, c.pair)
	if err != nil {
		c.l.Debug("entry context unavailable", zap.Error(err))
		return
	}
	c.l.Info("entry context", fields...)
}
