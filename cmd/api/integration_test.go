package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"portfolio-value-service/internal/infrastructure/config"
	"portfolio-value-service/internal/infrastructure/exchange/buda"
	"portfolio-value-service/internal/infrastructure/web/middleware"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const budaTickers = `{"tickers":[
	{"market_id":"BTC-CLP","last_price":["50000000.0","CLP"],"price_variation_24h":"0.01","price_variation_7d":"-0.02"},
	{"market_id":"ETH-CLP","last_price":["2000000.0","CLP"],"price_variation_24h":"0.0","price_variation_7d":"0.0"},
	{"market_id":"USDT-CLP","last_price":["950.0","CLP"],"price_variation_24h":"0.0","price_variation_7d":"0.0"}
]}`

const budaMarkets = `{"markets":[
	{"id":"BTC-CLP","name":"btc-clp","base_currency":"BTC","quote_currency":"CLP","minimum_order_amount":["0.00002","BTC"],"disabled":false,"illiquid":false}
]}`

// fakeBuda simula la API pública de Buda.com y cuenta las llamadas a /tickers
type fakeBuda struct {
	server      *httptest.Server
	tickerCalls atomic.Int32
	status      atomic.Int32
}

func newFakeBuda(t *testing.T) *fakeBuda {
	t.Helper()

	f := &fakeBuda{}
	f.status.Store(http.StatusOK)

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v2/tickers":
			f.tickerCalls.Add(1)
			status := int(f.status.Load())
			w.WriteHeader(status)
			if status == http.StatusOK {
				_, _ = io.WriteString(w, budaTickers)
			}
		case "/api/v2/markets":
			_, _ = io.WriteString(w, budaMarkets)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)

	return f
}

// newTestStack levanta el router completo apuntando al Buda falso
func newTestStack(t *testing.T, budaURL string, maxAttempts int) *httptest.Server {
	t.Helper()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = "error"
	cfg.PriceSource.BaseURL = budaURL + "/api/v2"
	cfg.PriceSource.Timeout = 2 * time.Second
	cfg.PriceSource.MaxAttempts = maxAttempts
	cfg.PriceSource.RetryDelay = time.Millisecond
	cfg.PriceSource.MaxRetryDelay = 5 * time.Millisecond
	require.NoError(t, config.NewValidator().Validate(cfg))
	require.NoError(t, initLogging(cfg, io.Discard))

	srv := httptest.NewServer(newRouter(cfg, buda.NewClientWithConfig(cfg.PriceSource)))
	t.Cleanup(srv.Close)
	return srv
}

func postPortfolio(t *testing.T, baseURL, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	resp, err := http.Post(baseURL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestIntegration_PortfolioValue(t *testing.T) {
	budaAPI := newFakeBuda(t)
	api := newTestStack(t, budaAPI.server.URL, 1)

	for _, path := range []string{"/api/v1/portfolio/value", "/getPortfolioValue"} {
		t.Run(path, func(t *testing.T) {
			resp, body := postPortfolio(t, api.URL, path,
				`{"portfolio":{"BTC":0.5,"ETH":2,"USDT":100},"fiat_currency":"CLP"}`)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, 29095000.0, body["portfolioValue"])
		})
	}

	assert.Equal(t, int32(2), budaAPI.tickerCalls.Load(), "one ticker fetch per request")
}

func TestIntegration_MissingTicker(t *testing.T) {
	budaAPI := newFakeBuda(t)
	api := newTestStack(t, budaAPI.server.URL, 1)

	resp, body := postPortfolio(t, api.URL, "/api/v1/portfolio/value",
		`{"portfolio":{"BTC":1,"LTC":3},"fiat_currency":"CLP"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "TICKER_NOT_FOUND", resp.Header.Get(middleware.ErrorKindHeader))
	assert.Equal(t, "Failed to calculate portfolio value", body["error"])
	assert.NotEmpty(t, body["message"])
}

func TestIntegration_UpstreamFailure(t *testing.T) {
	t.Run("Sin reintentos por defecto", func(t *testing.T) {
		budaAPI := newFakeBuda(t)
		budaAPI.status.Store(http.StatusServiceUnavailable)
		api := newTestStack(t, budaAPI.server.URL, 1)

		resp, body := postPortfolio(t, api.URL, "/api/v1/portfolio/value",
			`{"portfolio":{"BTC":1},"fiat_currency":"CLP"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "SOURCE_UNAVAILABLE", resp.Header.Get(middleware.ErrorKindHeader))
		assert.Equal(t, "HTTP error! status: 503", body["message"])
		assert.Equal(t, int32(1), budaAPI.tickerCalls.Load())
	})

	t.Run("Reintentos habilitados", func(t *testing.T) {
		budaAPI := newFakeBuda(t)
		budaAPI.status.Store(http.StatusServiceUnavailable)
		api := newTestStack(t, budaAPI.server.URL, 3)

		resp, _ := postPortfolio(t, api.URL, "/api/v1/portfolio/value",
			`{"portfolio":{"BTC":1},"fiat_currency":"CLP"}`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, int32(3), budaAPI.tickerCalls.Load())
	})
}

func TestIntegration_ValidationSkipsFetch(t *testing.T) {
	budaAPI := newFakeBuda(t)
	api := newTestStack(t, budaAPI.server.URL, 1)

	resp, body := postPortfolio(t, api.URL, "/api/v1/portfolio/value",
		`{"portfolio":{"BTC":1},"fiat_currency":"USD"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_CURRENCY", resp.Header.Get(middleware.ErrorKindHeader))
	assert.Equal(t, "Failed to calculate portfolio value", body["error"])
	assert.Zero(t, budaAPI.tickerCalls.Load())
}

func TestIntegration_Markets(t *testing.T) {
	budaAPI := newFakeBuda(t)
	api := newTestStack(t, budaAPI.server.URL, 1)

	resp, err := http.Get(api.URL + "/api/v1/markets")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Markets []struct {
			ID            string `json:"id"`
			BaseCurrency  string `json:"base_currency"`
			QuoteCurrency string `json:"quote_currency"`
		} `json:"markets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Markets, 1)
	assert.Equal(t, "BTC-CLP", body.Markets[0].ID)
	assert.Equal(t, "CLP", body.Markets[0].QuoteCurrency)
}

func BenchmarkPortfolioValueEndpoint(b *testing.B) {
	budaAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, budaTickers)
	}))
	defer budaAPI.Close()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = "error"
	cfg.PriceSource.BaseURL = budaAPI.URL
	if err := initLogging(cfg, io.Discard); err != nil {
		b.Fatal(err)
	}
	router := newRouter(cfg, buda.NewClientWithConfig(cfg.PriceSource))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/value",
			strings.NewReader(`{"portfolio":{"BTC":0.5,"USDT":10},"fiat_currency":"CLP"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
