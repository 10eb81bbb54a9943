// Command mentio watches one social account's posts and trades a configured
// pair when the tracked account mentions the base asset: a market buy sized
// from the free quote balance, then a delayed market sell of the whole
// position.
//
// Usage:
//
//	mentio setup                (interactive config wizard)
//	mentio --config config.yaml
//	mentio (uses CLI arguments)
//
// Required environment variables:
//
//	X_BEARER_TOKEN for the post stream
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/mentio/config"
	"github.com/vadiminshakov/mentio/internal"
	"github.com/vadiminshakov/mentio/internal/clients"
	"github.com/vadiminshakov/mentio/internal/services/feed"
	"github.com/vadiminshakov/mentio/internal/setup"
	"github.com/vadiminshakov/mentio/internal/storage/seenposts"
	"github.com/vadiminshakov/mentio/internal/web"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	// .env is optional, real env vars win
	_ = godotenv.Load()

	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var client interface{}
	switch conf.Platform {
	case "binance":
		apiKey := os.Getenv("BINANCE_API_KEY")
		apiSecret := os.Getenv("BINANCE_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			logger.Fatal("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set")
		}
		client = clients.NewBinanceClient(apiKey, apiSecret)
	case "bybit":
		apiKey := os.Getenv("BYBIT_API_KEY")
		apiSecret := os.Getenv("BYBIT_API_SECRET")
		if apiKey == "" || apiSecret == "" {
			logger.Fatal("BYBIT_API_KEY and BYBIT_API_SECRET environment variables must be set")
		}
		client = clients.NewBybitClient(apiKey, apiSecret)
	default:
		logger.Fatal("unsupported platform", zap.String("platform", conf.Platform))
	}

	bearerToken := os.Getenv("X_BEARER_TOKEN")
	if bearerToken == "" {
		logger.Fatal("X_BEARER_TOKEN environment variable must be set")
	}

	journal, err := seenposts.NewJournal(seenposts.DefaultDir)
	if err != nil {
		logger.Fatal("failed to open seen posts journal", zap.Error(err))
	}
	defer journal.Close()

	postFeed := feed.NewXFeed(bearerToken, conf.TrackedAccount, logger)

	bot, err := internal.NewMentionBot(conf, client, postFeed, journal, logger)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(ctx)
	})

	if conf.WebAddr != "" {
		server := web.NewServer(conf.WebAddr, bot)
		g.Go(func() error {
			logger.Info("status server listening", zap.String("addr", conf.WebAddr))
			return server.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
