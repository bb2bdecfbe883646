package domain

import "github.com/shopspring/decimal"

// Ticker is one market-data entry as returned by the ticker service.
// PriceUSD is null when the service has no USD quote for the symbol; such
// tickers cannot be used for valuation.
type Ticker struct {
	Symbol    string
	PriceUSD  decimal.NullDecimal
	PriceBTC  decimal.Decimal
	Converted map[string]decimal.Decimal
}

// PriceSet holds the resolved unit prices for one held currency, keyed by
// quote currency ("USD", "BTC", plus any requested conversion targets).
type PriceSet map[string]decimal.Decimal
