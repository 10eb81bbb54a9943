package internal

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/mentio/config"
	"github.com/vadiminshakov/mentio/internal/domain"
	"github.com/vadiminshakov/mentio/internal/services/cycle"
	"github.com/vadiminshakov/mentio/internal/services/filter"
	"github.com/vadiminshakov/mentio/internal/services/market/collector"
)

type postFeed interface {
	Start(ctx context.Context) (<-chan domain.PostEvent, error)
	UserID() string
}

type seenJournal interface {
	Seen(id string) bool
	Mark(id string) error
}

// MentionBot watches one account's post stream and runs a trade cycle for
// every qualifying mention of the traded asset.
type MentionBot struct {
	Config     config.Config
	feed       postFeed
	journal    seenJournal
	controller *cycle.Controller
	logger     *zap.Logger
}

// NewMentionBot wires venue services for the configured platform and builds
// the bot.
func NewMentionBot(conf config.Config, client any, feed postFeed, journal seenJournal, logger *zap.Logger) (*MentionBot, error) {
	provider, err := NewServiceProvider(client)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create service provider")
	}

	currentPricer, err := provider.Pricer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pricer")
	}
	currentWallet, err := provider.Wallet()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create wallet")
	}
	currentTrader, err := provider.Trader(conf.Pair)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trader")
	}
	klines, err := provider.KlineProvider()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kline provider")
	}

	controller, err := cycle.NewController(
		logger,
		conf.Pair,
		conf.UseBalance,
		conf.TimeToSell,
		currentPricer,
		currentWallet,
		currentTrader,
		collector.NewContextBuilder(klines),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cycle controller")
	}

	return &MentionBot{
		Config:     conf,
		feed:       feed,
		journal:    journal,
		controller: controller,
		logger:     logger,
	}, nil
}

// Status reports the current cycle state for the status server.
func (b *MentionBot) Status() cycle.Status {
	return b.controller.Snapshot()
}

// Run consumes the post stream until ctx is cancelled or the stream ends.
// A closed stream is an error: the feed does not reconnect, so the process
// should exit and be restarted by the supervisor.
func (b *MentionBot) Run(ctx context.Context) error {
	events, err := b.feed.Start(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to start post feed")
	}

	// the author filter needs the resolved account ID, so it is built after
	// the feed connects
	postFilter := filter.New(b.Config.Enabled, b.Config.Pair.From, b.feed.UserID(), b.Config.AllowReplies)

	b.logger.Info("watching account",
		zap.String("account", b.Config.TrackedAccount),
		zap.String("pair", b.Config.Pair.String()),
		zap.Bool("trading_enabled", b.Config.Enabled))

	for {
		select {
		case <-ctx.Done():
			b.controller.Shutdown()
			return ctx.Err()

		case event, ok := <-events:
			if !ok {
				b.controller.Shutdown()
				return errors.New("post stream ended")
			}
			b.handlePost(ctx, postFilter, event)

		case <-b.controller.SellTimer():
			if err := b.controller.ExecuteSellLeg(ctx); err != nil {
				b.logger.Warn("sell leg failed, waiting for the next signal", zap.Error(err))
			}
		}
	}
}

func (b *MentionBot) handlePost(ctx context.Context, postFilter *filter.Filter, event domain.PostEvent) {
	if b.journal.Seen(event.ID) {
		b.logger.Debug("post already processed", zap.String("post_id", event.ID))
		return
	}
	if err := b.journal.Mark(event.ID); err != nil {
		b.logger.Error("failed to journal post", zap.String("post_id", event.ID), zap.Error(err))
	}

	if !postFilter.Qualifies(event) {
		return
	}

	b.logger.Info("qualifying mention",
		zap.String("post_id", event.ID),
		zap.String("text", event.Text))

	if err := b.controller.ExecuteBuyLeg(ctx, event); err != nil {
		if errors.Is(err, domain.ErrCycleInProgress) {
			b.logger.Info("signal skipped, trade cycle already open", zap.String("post_id", event.ID))
		}
		// other failures are reported by the controller when it aborts
	}
}
