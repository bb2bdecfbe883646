package clients

import (
	"github.com/adshao/go-binance/v2"
)

// NewBinanceClient creates a spot API client. Read-only API keys are
// sufficient, folio only ever queries account balances.
func NewBinanceClient(apiKey, apiSecret string) *binance.Client {
	return binance.NewClient(apiKey, apiSecret)
}
