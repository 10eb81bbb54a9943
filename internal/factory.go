package internal

import (
	"context"
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/mentio/internal/domain"
	"github.com/vadiminshakov/mentio/internal/services/market/collector"
	"github.com/vadiminshakov/mentio/internal/services/pricer"
	"github.com/vadiminshakov/mentio/internal/services/trader"
	"github.com/vadiminshakov/mentio/internal/services/wallet"
)

type traderService interface {
	SubmitMarketOrder(ctx context.Context, side domain.Side, quantity decimal.Decimal) (*domain.OrderResult, error)
}

type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, error)
}

type walletService interface {
	GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error)
}

type klineProvider interface {
	GetKlines(ctx context.Context, pair domain.Pair, interval string, limit int) ([]domain.MarketCandle, error)
}

// ServiceProvider defines a factory interface for creating platform-specific services.
type ServiceProvider interface {
	Trader(pair domain.Pair) (traderService, error)
	Pricer() (Pricer, error)
	Wallet() (walletService, error)
	KlineProvider() (klineProvider, error)
}

// NewServiceProvider creates a new service provider based on the client type.
// This is the single point of truth for dispatching to platform-specific implementations.
func NewServiceProvider(client any) (ServiceProvider, error) {
	switch c := client.(type) {
	case *binance.Client:
		return &binanceProvider{client: c}, nil
	case *bybit.Client:
		return &bybitProvider{client: c}, nil
	default:
		return nil, fmt.Errorf("unsupported client type: %T", client)
	}
}

type binanceProvider struct {
	client *binance.Client
}

func (p *binanceProvider) Trader(pair domain.Pair) (traderService, error) {
	return trader.NewBinanceTrader(p.client, pair)
}
func (p *binanceProvider) Pricer() (Pricer, error) {
	return pricer.NewBinancePricer(p.client), nil
}
func (p *binanceProvider) Wallet() (walletService, error) {
	return wallet.NewBinanceWallet(p.client), nil
}
func (p *binanceProvider) KlineProvider() (klineProvider, error) {
	return collector.NewBinanceKlineProvider(p.client), nil
}

type bybitProvider struct {
	client *bybit.Client
}

func (p *bybitProvider) Trader(pair domain.Pair) (traderService, error) {
	return trader.NewBybitTrader(p.client, pair)
}
func (p *bybitProvider) Pricer() (Pricer, error) {
	return pricer.NewBybitPricer(p.client), nil
}
func (p *bybitProvider) Wallet() (walletService, error) {
	return wallet.NewBybitWallet(p.client), nil
}
func (p *bybitProvider) KlineProvider() (klineProvider, error) {
	return collector.NewBybitKlineProvider(p.client), nil
}
