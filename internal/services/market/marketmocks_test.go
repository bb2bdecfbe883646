package market

import (
	"context"
	"sync/atomic"

	"github.com/vadiminshakov/folio/internal/domain"
)

// fakeTickerService records calls and delegates to overridable functions.
type fakeTickerService struct {
	tickersCalls int32
	topCalls     int32

	getTickers    func(ctx context.Context, symbols, convertTo []string) ([]domain.Ticker, error)
	getTopTickers func(ctx context.Context, limit int) ([]domain.Ticker, error)
}

func (f *fakeTickerService) GetTickers(ctx context.Context, symbols, convertTo []string) ([]domain.Ticker, error) {
	atomic.AddInt32(&f.tickersCalls, 1)
	return f.getTickers(ctx, symbols, convertTo)
}

func (f *fakeTickerService) GetTopTickers(ctx context.Context, limit int) ([]domain.Ticker, error) {
	atomic.AddInt32(&f.topCalls, 1)
	return f.getTopTickers(ctx, limit)
}
