package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/folio/internal/domain"
	"github.com/vadiminshakov/folio/pkg/retrier"
)

const defaultMarketDataTimeout = 10 * time.Second

// MarketDataClient talks to the ticker HTTP API (coinmarketcap-style).
// All prices come back as exact decimals; price_usd may be null for symbols
// the service cannot quote in USD.
type MarketDataClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retrier *retrier.Retrier
}

// NewMarketDataClient creates a client for the given API base URL. apiKey is
// optional and sent as the X-API-Key header when set.
func NewMarketDataClient(baseURL, apiKey string, timeout time.Duration) *MarketDataClient {
	if timeout <= 0 {
		timeout = defaultMarketDataTimeout
	}
	return &MarketDataClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		retrier: retrier.New(
			retrier.WithMaxRetries(2),
			retrier.WithInitialInterval(200*time.Millisecond),
		),
	}
}

type tickerPayload struct {
	Symbol    string              `json:"symbol"`
	PriceUSD  decimal.NullDecimal `json:"price_usd"`
	PriceBTC  decimal.NullDecimal `json:"price_btc"`
	Converted map[string]struct {
		Price decimal.Decimal `json:"price"`
	} `json:"converted"`
}

// GetTickers fetches ticker entries for the given market symbols, optionally
// quoted in additional convertTo currencies on top of USD and BTC.
func (c *MarketDataClient) GetTickers(ctx context.Context, symbols, convertTo []string) ([]domain.Ticker, error) {
	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))
	if len(convertTo) > 0 {
		query.Set("convert", strings.Join(convertTo, ","))
	}
	return c.fetchTickers(ctx, query)
}

// GetTopTickers fetches the first limit tickers ordered by market cap.
func (c *MarketDataClient) GetTopTickers(ctx context.Context, limit int) ([]domain.Ticker, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	return c.fetchTickers(ctx, query)
}

func (c *MarketDataClient) fetchTickers(ctx context.Context, query url.Values) ([]domain.Ticker, error) {
	endpoint := c.baseURL + "/tickers?" + query.Encode()

	payload, err := retrier.DoWithData(c.retrier, ctx, func(ctx context.Context) ([]tickerPayload, error) {
		return c.doRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch tickers")
	}

	tickers := make([]domain.Ticker, 0, len(payload))
	for _, p := range payload {
		ticker := domain.Ticker{
			Symbol:    p.Symbol,
			PriceUSD:  p.PriceUSD,
			PriceBTC:  p.PriceBTC.Decimal,
			Converted: make(map[string]decimal.Decimal, len(p.Converted)),
		}
		for quote, entry := range p.Converted {
			ticker.Converted[quote] = entry.Price
		}
		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

func (c *MarketDataClient) doRequest(ctx context.Context, endpoint string) ([]tickerPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ticker API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload []tickerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode ticker response")
	}
	return payload, nil
}
