package web

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
)

// number renders a decimal as a bare JSON number so clients see exact
// decimal values without float conversion on the way out.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

type entryResponse struct {
	Volume         number            `json:"volume"`
	Price          number            `json:"price"`
	PricePercent   number            `json:"pricePercent"`
	ConvertedPrice map[string]number `json:"convertedPrice"`
	UnknownPrice   bool              `json:"unknownPrice"`
}

type portfolioResponse struct {
	Balances       map[string]entryResponse `json:"balances"`
	Price          number                   `json:"price"`
	ConvertedPrice map[string]number        `json:"convertedPrice"`
}

func toResponse(pf *domain.Portfolio) portfolioResponse {
	balances := make(map[string]entryResponse, len(pf.Balances))
	for currency, entry := range pf.Balances {
		converted := make(map[string]number, len(entry.ConvertedPrice))
		for quote, value := range entry.ConvertedPrice {
			converted[quote] = number(value)
		}
		balances[currency] = entryResponse{
			Volume:         number(entry.Volume),
			Price:          number(entry.Price),
			PricePercent:   number(entry.PricePercent),
			ConvertedPrice: converted,
			UnknownPrice:   entry.UnknownPrice,
		}
	}

	totals := make(map[string]number, len(pf.TotalConverted))
	for quote, value := range pf.TotalConverted {
		totals[quote] = number(value)
	}

	return portfolioResponse{
		Balances:       balances,
		Price:          number(pf.TotalUSD),
		ConvertedPrice: totals,
	}
}
