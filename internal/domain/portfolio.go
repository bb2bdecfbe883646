package domain

import "github.com/shopspring/decimal"

// PortfolioEntry is the consolidated position for one currency.
// Price holds the USD value of the position, ConvertedPrice the value in
// every additionally requested quote currency. UnknownPrice stays true
// until a market price was successfully attached.
type PortfolioEntry struct {
	Volume         decimal.Decimal
	Price          decimal.Decimal
	PricePercent   decimal.Decimal
	ConvertedPrice map[string]decimal.Decimal
	UnknownPrice   bool
}

// NewPortfolioEntry returns a zero-valued entry with an unknown price.
func NewPortfolioEntry() *PortfolioEntry {
	return &PortfolioEntry{
		Volume:         decimal.Zero,
		Price:          decimal.Zero,
		PricePercent:   decimal.Zero,
		ConvertedPrice: make(map[string]decimal.Decimal),
		UnknownPrice:   true,
	}
}

// Portfolio is one consolidated snapshot across all selected sources.
// It lives for the duration of a single request.
type Portfolio struct {
	Balances       map[string]*PortfolioEntry
	TotalUSD       decimal.Decimal
	TotalConverted map[string]decimal.Decimal
}

// EmptyPortfolio is the snapshot returned when no sources were selected.
func EmptyPortfolio() *Portfolio {
	return &Portfolio{
		Balances:       make(map[string]*PortfolioEntry),
		TotalUSD:       decimal.Zero,
		TotalConverted: make(map[string]decimal.Decimal),
	}
}
