// Package collector fetches candlestick data from the venue and derives the
// market context reported with each buy. The context is informational only
// and never influences the trade.
package collector

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
	"github.com/vadiminshakov/mentio/internal/services/market/indicators"
	"go.uber.org/zap"
)

const (
	contextInterval = "1h"
	contextLimit    = 60
	fetchTimeout    = 30 * time.Second

	minCandlesForIndicators = 50
)

// KlineProvider fetches historical candlestick data for a trading pair.
// interval uses venue notation (e.g. "1m", "5m", "1h", "4h").
type KlineProvider interface {
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error)
}

// ContextBuilder turns recent candles into indicator log fields.
type ContextBuilder struct {
	provider KlineProvider
}

// NewContextBuilder creates a context builder over the given kline provider.
func NewContextBuilder(provider KlineProvider) *ContextBuilder {
	return &ContextBuilder{provider: provider}
}

// EntryContext fetches recent candles and returns indicator fields for the
// buy report log line.
func (b *ContextBuilder) EntryContext(ctx context.Context, pair domain.Pair) ([]zap.Field, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	candles, err := b.provider.GetKlines(ctxWithTimeout, pair, contextInterval, contextLimit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines for interval %s", contextInterval)
	}

	if len(candles) < minCandlesForIndicators {
		return nil, errors.Errorf("insufficient kline data for interval %s (need at least %d, got %d)",
			contextInterval, minCandlesForIndicators, len(candles))
	}

	closes := make([]decimal.Decimal, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	snapshot, err := indicators.Latest(closes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to calculate indicators")
	}

	return []zap.Field{
		zap.String("interval", contextInterval),
		zap.String("ema20", snapshot.EMA20.Round(8).String()),
		zap.String("rsi14", snapshot.RSI14.Round(2).String()),
		zap.String("last_close", closes[len(closes)-1].String()),
	}, nil
}
