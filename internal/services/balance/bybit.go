package balance

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// BybitSource reads wallet balances from a Bybit unified account.
type BybitSource struct {
	id     string
	client *bybit.Client
}

func NewBybitSource(id string, client *bybit.Client) *BybitSource {
	return &BybitSource{id: id, client: client}
}

func (s *BybitSource) ID() string { return s.id }

// Balances returns every non-zero coin on the unified account.
func (s *BybitSource) Balances(_ context.Context) (domain.Balances, error) {
	res, err := s.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5("UNIFIED"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bybit wallet balance")
	}

	balances := make(domain.Balances)
	for _, account := range res.Result.List {
		for _, coin := range account.Coin {
			total, err := decimal.NewFromString(coin.WalletBalance)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse balance of %s", coin.Coin)
			}
			if total.IsZero() {
				continue
			}
			currency := string(coin.Coin)
			balances[currency] = balances[currency].Add(total)
		}
	}
	return balances, nil
}
