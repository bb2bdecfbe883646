// Package balance fetches account balances from exchange sources.
package balance

import (
	"context"

	"github.com/vadiminshakov/folio/internal/domain"
)

// Source is one account whose balances contribute to the portfolio.
// Implementations must be safe for concurrent use.
type Source interface {
	ID() string
	Balances(ctx context.Context) (domain.Balances, error)
}
