// Package portfolio consolidates per-source balances into one valued
// snapshot.
package portfolio

import (
	"github.com/vadiminshakov/folio/internal/domain"
)

// Consolidate merges successful outcomes into a single currency→entry map,
// summing volumes for currencies held on more than one source. Failed
// outcomes contribute nothing; summation is exact decimal addition, so the
// order of outcomes does not matter.
func Consolidate(outcomes []domain.Outcome) map[string]*domain.PortfolioEntry {
	entries := make(map[string]*domain.PortfolioEntry)
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			continue
		}
		for currency, amount := range outcome.Balances {
			entry, ok := entries[currency]
			if !ok {
				entry = domain.NewPortfolioEntry()
				entries[currency] = entry
			}
			entry.Volume = entry.Volume.Add(amount)
		}
	}
	return entries
}
