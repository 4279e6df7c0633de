package handlers

import (
	"encoding/json"
	"net/http"
	"portfolio-value-service/internal/application/dto"
	"portfolio-value-service/internal/domain/interfaces"
)

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	exchange interfaces.Exchange
	mockMode bool
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(exchange interfaces.Exchange, mockMode bool) *HealthHandler {
	return &HealthHandler{
		exchange: exchange,
		mockMode: mockMode,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Does not contact the price source.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running correctly"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"service": "running",
	}

	h.writeJSONResponse(w, http.StatusOK, dto.NewHealthResponse("healthy", services))
}

// Ready godoc
// @Summary Readiness check
// @Description Verifies that a price source is configured. Prices are never cached, so the exchange itself is not called.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is ready to receive traffic"
// @Failure 503 {object} dto.HealthResponse "No price source configured"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string)

	if h.exchange == nil {
		services["price_source"] = "not configured"
		h.writeJSONResponse(w, http.StatusServiceUnavailable, dto.NewHealthResponse("not_ready", services))
		return
	}

	services["price_source"] = h.exchange.Name()
	services["mode"] = "live"
	if h.mockMode {
		services["mode"] = "mock"
	}

	h.writeJSONResponse(w, http.StatusOK, dto.NewHealthResponse("ready", services))
}

// writeJSONResponse escribe una respuesta JSON
func (h *HealthHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
	}
}
