package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// Rounding scales observable in the API output. decimal.Round rounds half
// away from zero, which keeps totals reconcilable with the per-currency
// values they are summed from.
const (
	usdScale       = 4
	convertedScale = 8
	volumeScale    = 8
	percentScale   = 2
)

var hundred = decimal.NewFromInt(100)

// Value mutates the consolidated entries with prices and returns the
// portfolio totals (USD plus one total per converted quote currency).
//
// Two passes are required: a currency's share of the portfolio depends on
// the final USD total, which is only known after every USD value has been
// computed.
func Value(entries map[string]*domain.PortfolioEntry, prices map[string]domain.PriceSet) (decimal.Decimal, map[string]decimal.Decimal) {
	totalUSD := decimal.Zero
	totalConverted := make(map[string]decimal.Decimal)

	for currency, entry := range entries {
		priceSet, ok := prices[currency]
		if !ok {
			// no market price; the position keeps unknownPrice=true and
			// contributes nothing to the totals
			continue
		}
		entry.UnknownPrice = false

		for quote, unitPrice := range priceSet {
			if quote == "USD" {
				value := entry.Volume.Mul(unitPrice).Round(usdScale)
				entry.Price = value
				totalUSD = totalUSD.Add(value)
				continue
			}
			value := entry.Volume.Mul(unitPrice).Round(convertedScale)
			entry.ConvertedPrice[quote] = value
			totalConverted[quote] = totalConverted[quote].Add(value)
		}

		entry.Volume = entry.Volume.Round(volumeScale)
	}

	for _, entry := range entries {
		if totalUSD.IsZero() {
			// nothing could be valued; percentages are not applicable
			entry.PricePercent = decimal.Zero
			continue
		}
		entry.PricePercent = hundred.Mul(entry.Price).Div(totalUSD).Round(percentScale)
	}

	totalUSD = totalUSD.Round(usdScale)
	for quote, total := range totalConverted {
		totalConverted[quote] = total.Round(convertedScale)
	}

	return totalUSD, totalConverted
}
