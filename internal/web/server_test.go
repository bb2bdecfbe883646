package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/internal/services/balance"
	"go.uber.org/zap"
)

type stubSource struct{ id string }

func (s *stubSource) ID() string { return s.id }
func (s *stubSource) Balances(context.Context) (domain.Balances, error) {
	return domain.Balances{}, nil
}

type stubBuilder struct {
	calls     int
	sourceIDs []string
	convertTo []string
	portfolio *domain.Portfolio
	err       error
}

func (b *stubBuilder) Build(_ context.Context, sources []balance.Source, convertTo []string) (*domain.Portfolio, error) {
	b.calls++
	b.sourceIDs = nil
	for _, src := range sources {
		b.sourceIDs = append(b.sourceIDs, src.ID())
	}
	b.convertTo = convertTo
	return b.portfolio, b.err
}

func newTestServer(builder PortfolioBuilder, ids ...string) *Server {
	sources := make([]balance.Source, 0, len(ids))
	for _, id := range ids {
		sources = append(sources, &stubSource{id: id})
	}
	return NewServer(":0", zap.NewNop(), sources, builder)
}

func samplePortfolio() *domain.Portfolio {
	entry := domain.NewPortfolioEntry()
	entry.Volume = decimal.RequireFromString("1.5")
	entry.Price = decimal.RequireFromString("30000")
	entry.PricePercent = decimal.RequireFromString("60")
	entry.UnknownPrice = false

	pf := domain.EmptyPortfolio()
	pf.Balances["BTC"] = entry
	pf.TotalUSD = decimal.RequireFromString("30000")
	return pf
}

func TestPortfolioEndpointHappyPath(t *testing.T) {
	builder := &stubBuilder{portfolio: samplePortfolio()}
	server := newTestServer(builder, "binance", "bybit")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, builder.calls)
	// absent exchanges parameter selects every registered source
	assert.Equal(t, []string{"binance", "bybit"}, builder.sourceIDs)

	assert.JSONEq(t, `{
		"balances": {
			"BTC": {"volume":1.5, "price":30000, "pricePercent":60, "convertedPrice":{}, "unknownPrice":false}
		},
		"price": 30000,
		"convertedPrice": {}
	}`, rec.Body.String())
}

func TestPortfolioEndpointFiltersSources(t *testing.T) {
	builder := &stubBuilder{portfolio: domain.EmptyPortfolio()}
	server := newTestServer(builder, "binance", "bybit", "demo")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio?exchanges=bybit,unknown,demo", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	// unknown ids silently dropped
	assert.Equal(t, []string{"bybit", "demo"}, builder.sourceIDs)
}

func TestPortfolioEndpointRepeatedParams(t *testing.T) {
	builder := &stubBuilder{portfolio: domain.EmptyPortfolio()}
	server := newTestServer(builder, "binance", "bybit")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio?exchanges=binance&exchanges=bybit&convertTo=EUR,GBP&convertTo=JPY", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"binance", "bybit"}, builder.sourceIDs)
	assert.Equal(t, []string{"EUR", "GBP", "JPY"}, builder.convertTo)
}

func TestPortfolioEndpointEmptyFilterShortCircuits(t *testing.T) {
	builder := &stubBuilder{portfolio: samplePortfolio()}
	server := newTestServer(builder, "binance")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio?exchanges=nonexistent", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, builder.calls, "no external calls for an empty source selection")
	assert.JSONEq(t, `{"balances":{}, "price":0, "convertedPrice":{}}`, rec.Body.String())
}

func TestPortfolioEndpointMarketDataFailure(t *testing.T) {
	builder := &stubBuilder{err: errors.New("tickers unavailable")}
	server := newTestServer(builder, "binance")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"market data unavailable"}`, rec.Body.String())
}

func TestPortfolioEndpointAbsentWithoutSources(t *testing.T) {
	server := newTestServer(&stubBuilder{portfolio: domain.EmptyPortfolio()})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPortfolioEndpointAbsentWithoutBuilder(t *testing.T) {
	server := newTestServer(nil, "binance")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portfolio", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPortfolioEndpointRejectsNonGet(t *testing.T) {
	server := newTestServer(&stubBuilder{portfolio: domain.EmptyPortfolio()}, "binance")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/portfolio", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResponseMarshalsDecimalsAsNumbers(t *testing.T) {
	pf := domain.EmptyPortfolio()
	entry := domain.NewPortfolioEntry()
	entry.Volume = decimal.RequireFromString("0.00000001")
	entry.ConvertedPrice["EUR"] = decimal.RequireFromString("12.34567891")
	pf.Balances["XYZ"] = entry
	pf.TotalConverted["EUR"] = decimal.RequireFromString("12.34567891")

	raw, err := json.Marshal(toResponse(pf))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"volume":0.00000001`)
	assert.Contains(t, string(raw), `"EUR":12.34567891`)
	assert.Contains(t, string(raw), `"unknownPrice":true`)
}
