// Command folio serves a consolidated view of spot balances held across
// multiple exchange accounts, valued through a market-data service.
//
// Usage:
//
//	folio --config folio.yaml
//	folio --marketdata https://md.example.com (single demo source)
//	folio setup (interactive configuration wizard)
//
// Required environment variables per configured platform:
//
//	Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
//	Hyperliquid: HYPERLIQUID_PRIVATE_KEY (optional HYPERLIQUID_BASE_URL)
//	Market data: MARKETDATA_API_KEY (optional)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vadiminshakov/folio/config"
	"github.com/vadiminshakov/folio/internal/clients"
	"github.com/vadiminshakov/folio/internal/services/balance"
	"github.com/vadiminshakov/folio/internal/services/market"
	"github.com/vadiminshakov/folio/internal/services/portfolio"
	"github.com/vadiminshakov/folio/internal/setup"
	"github.com/vadiminshakov/folio/internal/web"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunWizard(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	marketdata := clients.NewMarketDataClient(cfg.MarketDataURL, os.Getenv("MARKETDATA_API_KEY"), cfg.MarketDataTimeout)
	toplist := market.NewTopList(marketdata, cfg.TopListLimit)

	sources, err := buildSources(cfg, toplist)
	if err != nil {
		logger.Fatal("failed to build balance sources", zap.Error(err))
	}

	svc := portfolio.NewService(balance.NewFetcher(cfg.SourceTimeout), market.NewEnricher(marketdata))
	server := web.NewServer(cfg.ListenAddr, logger, sources, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting folio",
		zap.String("addr", cfg.ListenAddr),
		zap.Int("sources", len(sources)))

	if err := server.Start(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildSources(cfg config.Config, toplist *market.TopList) ([]balance.Source, error) {
	sources := make([]balance.Source, 0, len(cfg.Exchanges))
	for _, account := range cfg.Exchanges {
		if account.Demo {
			sources = append(sources, balance.NewDemoSource(account.ID, toplist))
			continue
		}

		switch account.Platform {
		case "binance":
			apiKey := os.Getenv("BINANCE_API_KEY")
			apiSecret := os.Getenv("BINANCE_API_SECRET")
			if apiKey == "" || apiSecret == "" {
				log.Fatal("BINANCE_API_KEY and BINANCE_API_SECRET environment variables must be set")
			}
			client := clients.NewBinanceClient(apiKey, apiSecret)
			sources = append(sources, balance.NewBinanceSource(account.ID, client))
		case "bybit":
			apiKey := os.Getenv("BYBIT_API_KEY")
			apiSecret := os.Getenv("BYBIT_API_SECRET")
			if apiKey == "" || apiSecret == "" {
				log.Fatal("BYBIT_API_KEY and BYBIT_API_SECRET environment variables must be set")
			}
			client := clients.NewBybitClient(apiKey, apiSecret)
			sources = append(sources, balance.NewBybitSource(account.ID, client))
		case "hyperliquid":
			privateKey := os.Getenv("HYPERLIQUID_PRIVATE_KEY")
			if privateKey == "" {
				log.Fatal("HYPERLIQUID_PRIVATE_KEY environment variable must be set")
			}
			client, err := clients.NewHyperliquidClient(privateKey, os.Getenv("HYPERLIQUID_BASE_URL"))
			if err != nil {
				return nil, err
			}
			sources = append(sources, balance.NewHyperliquidSource(account.ID, client))
		default:
			log.Fatalf("unsupported platform %q", account.Platform)
		}
	}
	return sources, nil
}
