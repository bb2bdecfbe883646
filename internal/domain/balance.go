package domain

import "github.com/shopspring/decimal"

// Balances maps a currency code to the total amount held on one account.
type Balances map[string]decimal.Decimal

// Outcome is the result of fetching balances from a single source.
// Exactly one of Balances or Err is meaningful.
type Outcome struct {
	SourceID string
	Balances Balances
	Err      error
}
