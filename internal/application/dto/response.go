package dto

import (
	"time"
)

// Etiquetas fijas del campo "error" en respuestas fallidas
const (
	ErrorLabelValuation = "Failed to calculate portfolio value"
	ErrorLabelMarkets   = "Failed to fetch markets"
)

// PortfolioValueResponse represents a successful valuation
// @Description Total value of the portfolio in the requested fiat currency
type PortfolioValueResponse struct {
	PortfolioValue float64 `json:"portfolioValue" example:"31900000"` // Sum of amount × last price, unrounded
}

// ErrorResponse represents the uniform error body
// @Description Uniform error response; every failure kind uses it with HTTP 500
type ErrorResponse struct {
	Error   string `json:"error" example:"Failed to calculate portfolio value" validate:"required"` // Fixed label per endpoint
	Message string `json:"message" example:"Ticker not found for BCH-CLP"`                          // Failure description
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,ready,not_ready"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2023-12-01T10:30:00Z" validate:"required"`                 // When the check was performed
	Services  map[string]string `json:"services,omitempty" example:"price_source:buda"`                               // Individual component statuses
}

// CurrenciesResponse lists the accepted identifiers
// @Description Supported assets and fiat currencies
type CurrenciesResponse struct {
	Assets         []string `json:"assets" example:"BTC,ETH,BCH,LTC,USDC,USDT"`
	FiatCurrencies []string `json:"fiat_currencies" example:"CLP,COP,PEN"`
}

// MarketData is one exchange market
// @Description Exchange market summary
type MarketData struct {
	ID            string `json:"id" example:"BTC-CLP"`
	Name          string `json:"name" example:"btc-clp"`
	BaseCurrency  string `json:"base_currency" example:"BTC"`
	QuoteCurrency string `json:"quote_currency" example:"CLP"`
	Disabled      bool   `json:"disabled" example:"false"`
}

// MarketsResponse represents the response from /api/v1/markets
// @Description Markets listed by the price source
type MarketsResponse struct {
	Markets []MarketData `json:"markets"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(label string, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   label,
		Message: message,
	}
}

// NewHealthResponse creates a health check response
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	}
}
