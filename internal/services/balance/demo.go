package balance

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/internal/services/market"
)

// TopListProvider supplies the market symbols a demo source is allowed to
// hold (the current top of the market-cap ranking).
type TopListProvider interface {
	Symbols(ctx context.Context) ([]string, error)
}

// DemoSource produces synthetic balances restricted to the top-of-market
// currency list. A failing top-list lookup degrades to an empty balance set
// instead of an error, so a demo account never blocks real sources.
type DemoSource struct {
	id      string
	toplist TopListProvider
}

func NewDemoSource(id string, toplist TopListProvider) *DemoSource {
	return &DemoSource{id: id, toplist: toplist}
}

func (s *DemoSource) ID() string { return s.id }

// Balances generates a pseudo-random position for every top-list currency.
// Symbols come back in market-data naming and are translated to
// exchange-native codes, the same way a real exchange would report them.
func (s *DemoSource) Balances(ctx context.Context) (domain.Balances, error) {
	symbols, err := s.toplist.Symbols(ctx)
	if err != nil {
		return domain.Balances{}, nil
	}

	balances := make(domain.Balances, len(symbols))
	for _, symbol := range symbols {
		balances[market.ToCurrency(symbol)] = demoVolume()
	}
	return balances, nil
}

// demoVolume returns a volume in [0.5, 100) with 8 fractional digits.
func demoVolume() decimal.Decimal {
	return decimal.NewFromFloat(0.5 + rand.Float64()*99.5).Round(8)
}
