// Package setup provides the interactive configuration wizard.
package setup

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
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

type wizardExchange struct {
	ID       string `yaml:"id"`
	Platform string `yaml:"platform,omitempty"`
	Demo     bool   `yaml:"demo,omitempty"`
}

// durations are kept as strings so the generated YAML stays human-editable
type wizardConfig struct {
	ListenAddr        string           `yaml:"listen_addr"`
	MarketDataURL     string           `yaml:"marketdata_url"`
	SourceTimeout     string           `yaml:"source_timeout"`
	MarketDataTimeout string           `yaml:"marketdata_timeout"`
	TopListLimit      int              `yaml:"toplist_limit"`
	Exchanges         []wizardExchange `yaml:"exchanges"`
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

func header(step string) {
	clearScreen()
	fmt.Println(headerStyle.Render("FOLIO CONFIG WIZARD"))
	fmt.Println(stepStyle.Render(step))
}

// RunWizard walks through service configuration and writes folio.yaml.
func RunWizard() error {
	var (
		listenAddr    string
		marketDataURL string
		platforms     []string
		addDemo       bool
		confirm       bool
	)

	// defaults
	listenAddr = ":8080"
	marketDataURL = "http://localhost:8001"

	clearScreen()
	fmt.Println(headerStyle.Render("FOLIO CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Aggregate balances across your exchange accounts.\n"))

	fmt.Println(stepStyle.Render("STEP 1: HTTP"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Description("host:port the API binds to").
				Value(&listenAddr),
		),
	).Run()
	if err != nil {
		return err
	}

	header("STEP 2: MARKET DATA")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Market data API base URL").
				Description("Ticker service used for USD valuation (API key via MARKETDATA_API_KEY)").
				Value(&marketDataURL),
		),
	).Run()
	if err != nil {
		return err
	}

	header("STEP 3: EXCHANGE ACCOUNTS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select exchanges to aggregate").
				Description("Credentials are read from environment variables at startup").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
				).
				Value(&platforms),
			huh.NewConfirm().
				Title("Add a demo account with synthetic balances?").
				Value(&addDemo),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg := wizardConfig{
		ListenAddr:        listenAddr,
		MarketDataURL:     marketDataURL,
		SourceTimeout:     "10s",
		MarketDataTimeout: "10s",
		TopListLimit:      20,
	}
	for _, platform := range platforms {
		cfg.Exchanges = append(cfg.Exchanges, wizardExchange{ID: platform, Platform: platform})
	}
	if addDemo {
		cfg.Exchanges = append(cfg.Exchanges, wizardExchange{ID: "demo", Demo: true})
	}
	if len(cfg.Exchanges) == 0 {
		return fmt.Errorf("no exchange accounts selected")
	}

	header("STEP 4: CONFIRM")
	rendered, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render(string(rendered)))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write folio.yaml?").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}

	if err := os.WriteFile("folio.yaml", rendered, 0o644); err != nil {
		return err
	}

	fmt.Println(stepStyle.Render("folio.yaml written. Start the service with: folio --config folio.yaml"))
	return nil
}
