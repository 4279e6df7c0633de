package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/":                        "/",
		"/health":                  "/health",
		"/health/":                 "/health",
		"/api/v1/portfolio/value":  "/api/v1/portfolio/value",
		"/getPortfolioValue":       "/getPortfolioValue",
		"/api/v1/currencies":       "/api/v1/currencies",
		"/swagger/index.html":      "/swagger/*",
		"/api/v1/something/random": "/api/v1/*",
		"/api/v2/x":                "/api/*",
		"/wp-admin":                "/unknown",
	}

	for path, expected := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, expected, normalizePath(path))
		})
	}
}

func TestHTTPMetricsMiddleware_RecordsStatus(t *testing.T) {
	router := mux.NewRouter()
	router.Use(HTTPMetricsMiddleware)
	router.HandleFunc("/api/v1/portfolio/value", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}).Methods(http.MethodPost)

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/portfolio/value", "500")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/portfolio/value", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordValuation(t *testing.T) {
	success := ValuationsTotal.WithLabelValues("COP", "success")
	failures := ValuationFailuresTotal.WithLabelValues("TICKER_NOT_FOUND")
	errored := ValuationsTotal.WithLabelValues("COP", "error")

	successBefore := testutil.ToFloat64(success)
	failuresBefore := testutil.ToFloat64(failures)
	erroredBefore := testutil.ToFloat64(errored)

	RecordValuation("COP", "", 2, 10*time.Millisecond)
	RecordValuation("COP", "TICKER_NOT_FOUND", 1, 5*time.Millisecond)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, erroredBefore+1, testutil.ToFloat64(errored))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(failures))
}

func TestRecordExternalAPICall(t *testing.T) {
	counter := ExternalAPIRequestsTotal.WithLabelValues("buda", "/tickers", "0")
	before := testutil.ToFloat64(counter)

	RecordExternalAPICall("buda", "/tickers", 0, 150*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
