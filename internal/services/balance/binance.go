package balance

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// BinanceSource reads spot account balances from Binance.
type BinanceSource struct {
	id     string
	client *binance.Client
}

func NewBinanceSource(id string, client *binance.Client) *BinanceSource {
	return &BinanceSource{id: id, client: client}
}

func (s *BinanceSource) ID() string { return s.id }

// Balances returns every non-zero asset on the spot account. Free and locked
// amounts are both counted towards the total.
func (s *BinanceSource) Balances(ctx context.Context) (domain.Balances, error) {
	account, err := s.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance account")
	}

	balances := make(domain.Balances, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse free balance of %s", b.Asset)
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse locked balance of %s", b.Asset)
		}
		total := free.Add(locked)
		if total.IsZero() {
			continue
		}
		balances[b.Asset] = total
	}
	return balances, nil
}
