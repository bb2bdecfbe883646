package portfolio

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/internal/services/balance"
)

// BalanceFetcher fans out to the selected sources and reports one outcome
// per source.
type BalanceFetcher interface {
	Fetch(ctx context.Context, sources []balance.Source) []domain.Outcome
}

// PriceEnricher resolves market prices for the held currency set.
type PriceEnricher interface {
	Enrich(ctx context.Context, currencies []string, convertTo []string) (map[string]domain.PriceSet, error)
}

// Service builds consolidated portfolio snapshots.
type Service struct {
	fetcher  BalanceFetcher
	enricher PriceEnricher
}

func NewService(fetcher BalanceFetcher, enricher PriceEnricher) *Service {
	return &Service{fetcher: fetcher, enricher: enricher}
}

// Build aggregates balances of the given sources, prices them and computes
// totals and percentage shares. Individual source failures degrade to
// partial results; a market-data failure fails the whole request.
func (s *Service) Build(ctx context.Context, sources []balance.Source, convertTo []string) (*domain.Portfolio, error) {
	outcomes := s.fetcher.Fetch(ctx, sources)
	entries := Consolidate(outcomes)

	currencies := make([]string, 0, len(entries))
	for currency := range entries {
		currencies = append(currencies, currency)
	}

	prices, err := s.enricher.Enrich(ctx, currencies, convertTo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enrich portfolio with market prices")
	}

	totalUSD, totalConverted := Value(entries, prices)

	return &domain.Portfolio{
		Balances:       entries,
		TotalUSD:       totalUSD,
		TotalConverted: totalConverted,
	}, nil
}
