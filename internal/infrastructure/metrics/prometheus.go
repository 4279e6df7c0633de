package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the portfolio value service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_value_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_value_external_api_requests_total",
			Help: "Total number of external API requests",
		},
		[]string{"service", "endpoint", "status_code"}, // status_code 0: transport failure
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_external_api_request_duration_seconds",
			Help:    "External API request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"service", "endpoint"},
	)

	ExternalAPIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_value_external_api_retries_total",
			Help: "Total number of external API retry attempts",
		},
		[]string{"service", "endpoint", "attempt"},
	)

	// Business Metrics
	ValuationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_value_valuations_total",
			Help: "Total number of portfolio valuations by fiat currency and result",
		},
		[]string{"fiat_currency", "result"}, // result: success/error
	)

	ValuationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_value_valuation_failures_total",
			Help: "Total number of failed portfolio valuations by error kind",
		},
		[]string{"kind"},
	)

	ValuationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_valuation_duration_seconds",
			Help:    "End to end valuation duration in seconds, including the price fetch",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"fiat_currency"},
	)

	PortfolioAssets = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_value_portfolio_assets",
			Help:    "Number of distinct assets per valuation request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_value_application_info",
			Help: "Application information",
		},
		[]string{"version", "price_source", "go_version"},
	)

	UptimeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portfolio_value_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, requestSize, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if requestSize > 0 {
		HTTPRequestSizeBytes.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordExternalAPICall records external API call metrics
func RecordExternalAPICall(service, endpoint string, statusCode int, duration time.Duration) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

// RecordExternalAPIRetry records external API retry attempts
func RecordExternalAPIRetry(service, endpoint string, attempt int) {
	ExternalAPIRetries.WithLabelValues(service, endpoint, strconv.Itoa(attempt)).Inc()
}

// RecordValuation records the outcome of one valuation. kind is empty on success.
func RecordValuation(fiat string, kind string, assetCount int, duration time.Duration) {
	if fiat == "" {
		fiat = "none"
	}

	result := "success"
	if kind != "" {
		result = "error"
		ValuationFailuresTotal.WithLabelValues(kind).Inc()
	}

	ValuationsTotal.WithLabelValues(fiat, result).Inc()
	ValuationDuration.WithLabelValues(fiat).Observe(duration.Seconds())
	PortfolioAssets.Observe(float64(assetCount))
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, priceSource, goVersion string) {
	ApplicationInfo.WithLabelValues(version, priceSource, goVersion).Set(1)
}

// UpdateUptime updates application uptime
func UpdateUptime(seconds float64) {
	UptimeSeconds.Set(seconds)
}
