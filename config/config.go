// Package config loads folio configuration from a YAML file or CLI flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr        = ":8080"
	DefaultSourceTimeout     = 10 * time.Second
	DefaultMarketDataTimeout = 10 * time.Second
	DefaultTopListLimit      = 20
)

// SupportedPlatforms lists exchange platforms folio can read balances from.
var SupportedPlatforms = map[string]struct{}{
	"binance":     {},
	"bybit":       {},
	"hyperliquid": {},
}

// ExchangeAccount describes one balance source. A demo account yields
// synthetic balances and needs no credentials.
type ExchangeAccount struct {
	ID       string
	Platform string
	Demo     bool
}

// Config is the resolved process configuration.
type Config struct {
	ListenAddr        string
	MarketDataURL     string
	SourceTimeout     time.Duration
	MarketDataTimeout time.Duration
	TopListLimit      int
	Exchanges         []ExchangeAccount
}

type exchangeTmp struct {
	ID       string `yaml:"id"`
	Platform string `yaml:"platform,omitempty"`
	Demo     bool   `yaml:"demo,omitempty"`
}

type configTmp struct {
	ListenAddr        string        `yaml:"listen_addr,omitempty"`
	MarketDataURL     string        `yaml:"marketdata_url"`
	SourceTimeout     time.Duration `yaml:"source_timeout,omitempty"`
	MarketDataTimeout time.Duration `yaml:"marketdata_timeout,omitempty"`
	TopListLimit      int           `yaml:"toplist_limit,omitempty"`
	Exchanges         []exchangeTmp `yaml:"exchanges"`
}

// Get resolves configuration from --config (YAML) or, without it, from the
// remaining CLI flags with a single demo source so the service can run
// without exchange credentials.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	listen := flag.String("listen", DefaultListenAddr, "listen address")
	marketDataURL := flag.String("marketdata", "", "market data API base URL")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	cfg := Config{
		ListenAddr:        *listen,
		MarketDataURL:     *marketDataURL,
		SourceTimeout:     DefaultSourceTimeout,
		MarketDataTimeout: DefaultMarketDataTimeout,
		TopListLimit:      DefaultTopListLimit,
		Exchanges: []ExchangeAccount{
			{ID: "demo", Demo: true},
		},
	}
	return cfg, validate(cfg)
}

func getYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
func Parse(data []byte) (Config, error) {
	var tmp configTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Config{
		ListenAddr:        tmp.ListenAddr,
		MarketDataURL:     tmp.MarketDataURL,
		SourceTimeout:     tmp.SourceTimeout,
		MarketDataTimeout: tmp.MarketDataTimeout,
		TopListLimit:      tmp.TopListLimit,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	if cfg.MarketDataTimeout <= 0 {
		cfg.MarketDataTimeout = DefaultMarketDataTimeout
	}
	if cfg.TopListLimit <= 0 {
		cfg.TopListLimit = DefaultTopListLimit
	}
	for _, e := range tmp.Exchanges {
		cfg.Exchanges = append(cfg.Exchanges, ExchangeAccount{
			ID:       e.ID,
			Platform: e.Platform,
			Demo:     e.Demo,
		})
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	if cfg.MarketDataURL == "" {
		return fmt.Errorf("marketdata_url is required")
	}
	if len(cfg.Exchanges) == 0 {
		return fmt.Errorf("at least one exchange account is required")
	}

	seen := make(map[string]struct{}, len(cfg.Exchanges))
	for _, e := range cfg.Exchanges {
		if e.ID == "" {
			return fmt.Errorf("exchange account without id")
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate exchange account id %q", e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Demo {
			continue
		}
		if _, ok := SupportedPlatforms[e.Platform]; !ok {
			return fmt.Errorf("unsupported platform %q for account %q", e.Platform, e.ID)
		}
	}
	return nil
}
