package handlers

import (
	"net/http"
	"portfolio-value-service/internal/application/dto"
	"portfolio-value-service/internal/infrastructure/metrics"
	"portfolio-value-service/internal/infrastructure/web/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig agrupa los handlers y las superficies opcionales del router
type RouterConfig struct {
	Portfolio      *PortfolioHandler
	Health         *HealthHandler
	MetricsEnabled bool
	MetricsPath    string
	DocsEnabled    bool
}

// NewRouter sets up HTTP routes and the middleware chain:
// tracing → logging → mux (metrics → recovery → handler).
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.HTTPMetricsMiddleware, middleware.RecoveryMiddleware)

	// Health endpoints
	router.HandleFunc("/health", cfg.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/ready", cfg.Health.Ready).Methods(http.MethodGet)

	// API endpoints
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/portfolio/value", cfg.Portfolio.GetPortfolioValue).Methods(http.MethodPost)
	api.HandleFunc("/currencies", cfg.Portfolio.GetCurrencies).Methods(http.MethodGet)
	api.Handle("/markets", middleware.RecoveryWithLabel(dto.ErrorLabelMarkets)(http.HandlerFunc(cfg.Portfolio.GetMarkets))).
		Methods(http.MethodGet)

	// Compatibility alias for clients of the original function URL
	router.HandleFunc("/getPortfolioValue", cfg.Portfolio.GetPortfolioValue).Methods(http.MethodPost)

	// Monitoring endpoints
	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, promhttp.Handler()).Methods(http.MethodGet)
	}

	// Documentation endpoints
	if cfg.DocsEnabled {
		router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
		router.Handle("/docs", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))
	}

	return middleware.RequestTracingMiddleware(middleware.LoggingMiddleware(router))
}
