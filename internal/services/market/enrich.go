package market

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/folio/internal/domain"
)

// Enricher resolves market prices for a set of held currencies. A failure of
// the market-data service here is fatal to the whole portfolio request,
// unlike individual balance-source failures.
type Enricher struct {
	marketdata TickerService
}

// NewEnricher creates an enricher over the given market-data service.
func NewEnricher(marketdata TickerService) *Enricher {
	return &Enricher{marketdata: marketdata}
}

// Enrich requests tickers for every held currency (translated to market
// symbols) and returns unit prices keyed by exchange-native currency code.
// Tickers without a USD price and tickers that do not resolve to a held
// currency are dropped. When the service reports the same currency under two
// symbols, the later entry wins.
func (e *Enricher) Enrich(ctx context.Context, currencies []string, convertTo []string) (map[string]domain.PriceSet, error) {
	held := make(map[string]struct{}, len(currencies))
	symbols := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		held[currency] = struct{}{}
		symbols = append(symbols, ToMarketSymbol(currency))
	}

	tickers, err := e.marketdata.GetTickers(ctx, symbols, convertTo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch tickers")
	}

	prices := make(map[string]domain.PriceSet, len(tickers))
	for _, ticker := range tickers {
		if !ticker.PriceUSD.Valid {
			continue
		}
		currency := ticker.Symbol
		if _, ok := held[currency]; !ok {
			currency = ToCurrency(currency)
			if _, ok := held[currency]; !ok {
				continue
			}
		}

		priceSet := domain.PriceSet{
			"USD": ticker.PriceUSD.Decimal,
			"BTC": ticker.PriceBTC,
		}
		for quote, price := range ticker.Converted {
			priceSet[quote] = price
		}
		prices[currency] = priceSet
	}

	return prices, nil
}
