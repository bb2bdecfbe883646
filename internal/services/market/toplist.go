package market

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/folio/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultTopListLimit is how many top-by-market-cap symbols demo sources use.
const DefaultTopListLimit = 20

// TickerService is the market-data dependency of this package.
type TickerService interface {
	GetTickers(ctx context.Context, symbols, convertTo []string) ([]domain.Ticker, error)
	GetTopTickers(ctx context.Context, limit int) ([]domain.Ticker, error)
}

// TopList serves the top-N-by-market-cap symbol list. Concurrent callers
// share a single in-flight lookup; the flight is discarded once it resolves,
// so the next call after completion hits the market-data service again.
type TopList struct {
	marketdata TickerService
	limit      int
	group      singleflight.Group
}

// NewTopList creates a top-list lookup over the given market-data service.
func NewTopList(marketdata TickerService, limit int) *TopList {
	if limit <= 0 {
		limit = DefaultTopListLimit
	}
	return &TopList{marketdata: marketdata, limit: limit}
}

// Symbols returns the market symbols of the current top-N currencies.
func (t *TopList) Symbols(ctx context.Context) ([]string, error) {
	v, err, _ := t.group.Do("toplist", func() (interface{}, error) {
		tickers, err := t.marketdata.GetTopTickers(ctx, t.limit)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch top tickers")
		}
		symbols := make([]string, 0, len(tickers))
		for _, ticker := range tickers {
			symbols = append(symbols, ticker.Symbol)
		}
		return symbols, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}
