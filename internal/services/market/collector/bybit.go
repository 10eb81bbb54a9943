package collector

import (
	"context"
	"strconv"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
)

// BybitKlineProvider implements KlineProvider for Bybit.
type BybitKlineProvider struct {
	client *bybit.Client
}

// NewBybitKlineProvider creates a new Bybit kline provider.
func NewBybitKlineProvider(client *bybit.Client) *BybitKlineProvider {
	return &BybitKlineProvider{client: client}
}

// GetKlines fetches kline data from Bybit.
func (p *BybitKlineProvider) GetKlines(_ context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error) {
	bybitInterval, err := convertIntervalToBybit(interval)
	if err != nil {
		return nil, err
	}

	intervalDuration, err := intervalDuration(interval)
	if err != nil {
		return nil, err
	}

	res, err := p.client.V5().Market().GetKline(bybit.V5GetKlineParam{
		Category: bybit.CategoryV5Spot,
		Symbol:   bybit.SymbolV5(pair.Symbol()),
		Interval: bybit.Interval(bybitInterval),
		Limit:    &limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch klines from Bybit for %s", pair.String())
	}

	list := res.Result.List
	result := make([]domain.MarketCandle, len(list))
	// Bybit returns candles newest first; indicators need ascending order.
	for i, k := range list {
		openTime, err := parseTimestamp(k.StartTime)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse start time at index %d", i)
		}
		open, err := decimal.NewFromString(k.Open)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse open price at index %d", i)
		}
		high, err := decimal.NewFromString(k.High)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse high price at index %d", i)
		}
		low, err := decimal.NewFromString(k.Low)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse low price at index %d", i)
		}
		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse close price at index %d", i)
		}
		volume, err := decimal.NewFromString(k.Volume)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse volume at index %d", i)
		}

		result[len(list)-1-i] = domain.MarketCandle{
			OpenTime:  openTime,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
			Volume:    volume,
			CloseTime: openTime.Add(intervalDuration),
		}
	}

	return result, nil
}

// convertIntervalToBybit maps venue-neutral intervals ("1m", "1h", "1d") to
// Bybit V5 notation ("1", "60", "D").
func convertIntervalToBybit(interval string) (string, error) {
	if len(interval) < 2 {
		return "", errors.Errorf("invalid interval: %q", interval)
	}

	unit := interval[len(interval)-1]
	value := interval[:len(interval)-1]

	n, err := strconv.Atoi(value)
	if err != nil {
		return "", errors.Errorf("invalid interval number: %q", interval)
	}

	switch unit {
	case 'm':
		return strconv.Itoa(n), nil
	case 'h':
		return strconv.Itoa(n * 60), nil
	case 'd':
		return "D", nil
	case 'w':
		return "W", nil
	default:
		return "", errors.Errorf("unsupported interval unit in %q", interval)
	}
}

func intervalDuration(interval string) (time.Duration, error) {
	if len(interval) < 2 {
		return 0, errors.Errorf("invalid interval: %q", interval)
	}

	unit := interval[len(interval)-1]
	n, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil {
		return 0, errors.Errorf("invalid interval number: %q", interval)
	}

	switch unit {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	default:
		return 0, errors.Errorf("unsupported interval unit in %q", interval)
	}
}

func parseTimestamp(ms string) (time.Time, error) {
	if ms == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid timestamp %q", ms)
	}

	return time.Unix(0, n*int64(time.Millisecond)), nil
}
