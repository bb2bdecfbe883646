package balance

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
	"github.com/vadiminshakov/folio/internal/clients"
	"github.com/vadiminshakov/folio/internal/domain"
)

// HyperliquidSource reads spot balances of a Hyperliquid account.
type HyperliquidSource struct {
	id          string
	info        *hyperliquid.Info
	accountAddr string
}

func NewHyperliquidSource(id string, client *clients.HyperliquidClient) *HyperliquidSource {
	return &HyperliquidSource{
		id:          id,
		info:        client.Info(),
		accountAddr: client.AccountAddress(),
	}
}

func (s *HyperliquidSource) ID() string { return s.id }

// Balances returns every non-zero spot coin of the account. Coin codes are
// uppercased to line up with the other exchanges.
func (s *HyperliquidSource) Balances(ctx context.Context) (domain.Balances, error) {
	state, err := s.info.SpotUserState(ctx, s.accountAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hyperliquid spot user state")
	}

	balances := make(domain.Balances, len(state.Balances))
	for _, b := range state.Balances {
		total, err := decimal.NewFromString(b.Total)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse balance of %s", b.Coin)
		}
		if total.IsZero() {
			continue
		}
		balances[strings.ToUpper(b.Coin)] = total
	}
	return balances, nil
}
