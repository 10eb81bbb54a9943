// Package setup implements the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

type configFile struct {
	Platform       string `yaml:"platform"`
	Pair           string `yaml:"pair"`
	UseBalance     string `yaml:"usebalance"`
	TimeToSell     string `yaml:"time_to_sell"`
	TrackedAccount string `yaml:"tracked_account"`
	AllowReplies   bool   `yaml:"allow_replies"`
	WebAddr        string `yaml:"web_addr,omitempty"`
}

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		platform       string
		pair           string
		useBalanceStr  string
		timeToSellStr  string
		trackedAccount string
		allowReplies   bool
		webAddr        string
		confirm        bool
	)

	// defaults
	useBalanceStr = "50"
	timeToSellStr = "5m"

	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("MENTIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Buy on a mention, sell on a timer.\n"))

	// platform
	fmt.Println(stepStyle.Render("STEP 1: PLATFORM"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Exchange Platform").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	// pair
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("MENTIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Trading Pair").
				Description("Base asset is the word watched for in posts (e.g. DOGE_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !containsUnderscore(s) {
						return fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. DOGE_USDT)")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// tracked account
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("MENTIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: TRACKED ACCOUNT"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account Username").
				Description("The account whose posts trigger trades, without @").
				Value(&trackedAccount).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("account cannot be empty")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Trade on replies too?").
				Value(&allowReplies),
		),
	).Run()
	if err != nil {
		return err
	}

	// sizing and timing
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("MENTIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: TRADE SETTINGS"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Balance % per buy").
				Description("Percentage of free quote balance (1-100)").
				Value(&useBalanceStr).
				Validate(validatePercent),
			huh.NewInput().
				Title("Time to sell").
				Description("Delay between buy and sell, duration string (e.g. 30s, 5m, 1h)").
				Value(&timeToSellStr).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return err
					}
					if d <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),
			huh.NewInput().
				Title("Status server address").
				Description("e.g. :8080, leave empty to disable").
				Value(&webAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	// summary
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("MENTIO CONFIG WIZARD"))
	summary := fmt.Sprintf(
		"Platform:         %s\nPair:             %s\nTracked account:  @%s\nReplies trigger:  %v\nBalance per buy:  %s%%\nTime to sell:     %s\nStatus server:    %s",
		platform, pair, trackedAccount, allowReplies, useBalanceStr, timeToSellStr, orDisabled(webAddr),
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	data, err := yaml.Marshal(configFile{
		Platform:       platform,
		Pair:           pair,
		UseBalance:     useBalanceStr,
		TimeToSell:     timeToSellStr,
		TrackedAccount: trackedAccount,
		AllowReplies:   allowReplies,
		WebAddr:        webAddr,
	})
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\n✓ Configuration saved to %s\nRun the bot with --config %s", filename, filename)))
	return nil
}

func validatePercent(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("must be between 1 and 100")
	}
	return nil
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}

func orDisabled(s string) string {
	if s == "" {
		return "disabled"
	}
	return s
}
