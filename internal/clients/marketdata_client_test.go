package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketDataClientGetTickers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickers", r.URL.Path)
		assert.Equal(t, "BTC,MIOTA", r.URL.Query().Get("symbols"))
		assert.Equal(t, "EUR", r.URL.Query().Get("convert"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTC","price_usd":20000.5,"price_btc":1,"converted":{"EUR":{"price":18500.25}}},
			{"symbol":"MIOTA","price_usd":null,"price_btc":0.0000125}
		]`))
	}))
	defer server.Close()

	client := NewMarketDataClient(server.URL, "secret", 5*time.Second)
	tickers, err := client.GetTickers(context.Background(), []string{"BTC", "MIOTA"}, []string{"EUR"})
	require.NoError(t, err)
	require.Len(t, tickers, 2)

	btc := tickers[0]
	assert.Equal(t, "BTC", btc.Symbol)
	require.True(t, btc.PriceUSD.Valid)
	assert.True(t, btc.PriceUSD.Decimal.Equal(decimal.RequireFromString("20000.5")))
	assert.True(t, btc.Converted["EUR"].Equal(decimal.RequireFromString("18500.25")))

	miota := tickers[1]
	assert.False(t, miota.PriceUSD.Valid, "null price_usd must stay null")
	assert.True(t, miota.PriceBTC.Equal(decimal.RequireFromString("0.0000125")))
}

func TestMarketDataClientGetTopTickers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		w.Write([]byte(`[{"symbol":"BTC","price_usd":20000},{"symbol":"ETH","price_usd":2000}]`))
	}))
	defer server.Close()

	client := NewMarketDataClient(server.URL, "", 5*time.Second)
	tickers, err := client.GetTopTickers(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, tickers, 2)
	assert.Equal(t, "BTC", tickers[0].Symbol)
	assert.Equal(t, "ETH", tickers[1].Symbol)
}

func TestMarketDataClientRetriesTransientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"symbol":"BTC","price_usd":20000}]`))
	}))
	defer server.Close()

	client := NewMarketDataClient(server.URL, "", 5*time.Second)
	tickers, err := client.GetTickers(context.Background(), []string{"BTC"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, tickers, 1)
}

func TestMarketDataClientFailsAfterRetryBudget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewMarketDataClient(server.URL, "", time.Second)
	_, err := client.GetTickers(context.Background(), []string{"BTC"}, nil)
	assert.Error(t, err)
}
