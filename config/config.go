// Package config loads bot configuration from a yaml file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/mentio/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config describes one tracked account and the trade it triggers.
// Immutable after Get returns.
type Config struct {
	// Platform is the trading venue: "binance" or "bybit".
	Platform string
	// Enabled gates trading; when false, signals are observed but never traded.
	Enabled bool
	// Pair is the traded pair; Pair.From is the symbol looked for in posts.
	Pair domain.Pair
	// UseBalance is the percent of the free quote balance spent per buy, (0, 100].
	UseBalance decimal.Decimal
	// TimeToSell is the wall-clock delay between the buy and the sell leg.
	TimeToSell time.Duration
	// TrackedAccount is the social account username whose posts are watched.
	TrackedAccount string
	// AllowReplies controls whether reply posts may trigger a trade.
	AllowReplies bool
	// WebAddr is the optional listen address of the status server, empty to disable.
	WebAddr string
}

type configTmp struct {
	Platform       string        `yaml:"platform"`
	Enabled        *bool         `yaml:"enabled"`
	Pair           string        `yaml:"pair"`
	UseBalance     string        `yaml:"usebalance"`
	TimeToSell     time.Duration `yaml:"time_to_sell"`
	TrackedAccount string        `yaml:"tracked_account"`
	AllowReplies   bool          `yaml:"allow_replies"`
	WebAddr        string        `yaml:"web_addr,omitempty"`
}

// Get reads configuration from --config yaml when provided, otherwise from
// CLI flags.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pairFlag := flag.String("pair", "DOGE_USDT", "trade pair, example: DOGE_USDT")
	useb := flag.String("usebalance", "50", "percent of free quote balance spent per buy, example: 50")
	tts := flag.Duration("timetosell", 5*time.Minute, "delay between buy and sell")
	account := flag.String("account", "", "tracked account username")
	allowReplies := flag.Bool("allowreplies", false, "allow replies to trigger trades")
	platform := flag.String("platform", "binance", "trading venue: binance or bybit")
	webAddr := flag.String("webaddr", "", "status server listen address, empty to disable")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	pair, err := domain.ParsePair(*pairFlag)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --pair provided, --pair=%s: %w", *pairFlag, err)
	}
	usebalance, err := decimal.NewFromString(*useb)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --usebalance provided, --usebalance=%s: %w", *useb, err)
	}

	conf := Config{
		Platform:       *platform,
		Enabled:        true,
		Pair:           pair,
		UseBalance:     usebalance,
		TimeToSell:     *tts,
		TrackedAccount: *account,
		AllowReplies:   *allowReplies,
		WebAddr:        *webAddr,
	}

	return conf, conf.validate()
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	pair, err := domain.ParsePair(tmp.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param in yaml config: %s: %w", tmp.Pair, err)
	}

	usebalance, err := decimal.NewFromString(tmp.UseBalance)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'usebalance' param in yaml config (correct format is 50): %w", err)
	}

	// trading stays on unless explicitly disabled
	enabled := true
	if tmp.Enabled != nil {
		enabled = *tmp.Enabled
	}

	platform := tmp.Platform
	if platform == "" {
		platform = "binance"
	}

	conf := Config{
		Platform:       platform,
		Enabled:        enabled,
		Pair:           pair,
		UseBalance:     usebalance,
		TimeToSell:     tmp.TimeToSell,
		TrackedAccount: tmp.TrackedAccount,
		AllowReplies:   tmp.AllowReplies,
		WebAddr:        tmp.WebAddr,
	}

	return conf, conf.validate()
}

func (c Config) validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Pair.From == "" || c.Pair.To == "" {
		return fmt.Errorf("trading is enabled but pair %q has an empty asset", c.Pair.String())
	}
	if c.Pair.From == c.Pair.To {
		return fmt.Errorf("trading is enabled but base and quote assets are both %q", c.Pair.From)
	}
	if c.UseBalance.LessThanOrEqual(decimal.Zero) || c.UseBalance.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("usebalance must be in (0, 100], got %s", c.UseBalance.String())
	}
	if c.TimeToSell <= 0 {
		return fmt.Errorf("time_to_sell must be positive, got %s", c.TimeToSell)
	}
	if c.TrackedAccount == "" {
		return fmt.Errorf("tracked_account is required when trading is enabled")
	}

	return nil
}
