package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"portfolio-value-service/internal/application/dto"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/domain/interfaces"
	"portfolio-value-service/internal/infrastructure/logging"
	"portfolio-value-service/internal/infrastructure/metrics"
	"portfolio-value-service/internal/infrastructure/web/middleware"
	"time"
)

// PortfolioHandler handles portfolio valuation and exchange metadata requests
type PortfolioHandler struct {
	service      interfaces.ValuationService
	mapper       *dto.ValuationMapper
	maxBodyBytes int64
}

// NewPortfolioHandler creates a new instance of the portfolio handler.
// maxBodyBytes <= 0 disables the body size limit.
func NewPortfolioHandler(service interfaces.ValuationService, maxBodyBytes int64) *PortfolioHandler {
	return &PortfolioHandler{
		service:      service,
		mapper:       dto.NewValuationMapper(),
		maxBodyBytes: maxBodyBytes,
	}
}

// GetPortfolioValue godoc
// @Summary Value a cryptocurrency portfolio
// @Description Sums amount × last traded price for every asset, using live Buda.com tickers in the requested fiat currency. Every failure answers 500 with the same body shape.
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body dto.PortfolioValueRequest true "Portfolio and fiat currency"
// @Success 200 {object} dto.PortfolioValueResponse "Portfolio value"
// @Failure 500 {object} dto.ErrorResponse "Validation, price source or calculation failure"
// @Router /api/v1/portfolio/value [post]
func (h *PortfolioHandler) GetPortfolioValue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	req, err := dto.DecodePortfolioRequest(body)
	if err != nil {
		logging.Security().InvalidRequest(ctx, r.RemoteAddr, err.Error())
		metrics.RecordValuation("", string(entities.KindOf(err)), 0, time.Since(start))
		h.writeError(ctx, w, dto.ErrorLabelValuation, err)
		return
	}

	valuation, err := h.service.GetPortfolioValue(ctx, req)
	if err != nil {
		h.writeError(ctx, w, dto.ErrorLabelValuation, err)
		return
	}

	h.writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToPortfolioValueResponse(valuation))
}

// GetCurrencies godoc
// @Summary List supported currencies
// @Description Returns the assets and fiat currencies accepted by the valuation endpoint
// @Tags portfolio
// @Produce json
// @Success 200 {object} dto.CurrenciesResponse "Supported identifiers"
// @Router /api/v1/currencies [get]
func (h *PortfolioHandler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(r.Context(), w, http.StatusOK, h.mapper.ToCurrenciesResponse())
}

// GetMarkets godoc
// @Summary List exchange markets
// @Description Proxies the Buda.com market list
// @Tags markets
// @Produce json
// @Success 200 {object} dto.MarketsResponse "Markets"
// @Failure 500 {object} dto.ErrorResponse "Price source failure"
// @Router /api/v1/markets [get]
func (h *PortfolioHandler) GetMarkets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	markets, err := h.service.ListMarkets(ctx)
	if err != nil {
		h.writeError(ctx, w, dto.ErrorLabelMarkets, err)
		return
	}

	h.writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToMarketsResponse(markets))
}

// writeError writes the uniform 500 body. The failure kind goes only to the header.
func (h *PortfolioHandler) writeError(ctx context.Context, w http.ResponseWriter, label string, err error) {
	kind := entities.KindOf(err)

	logging.WarnWithError(ctx, "Request failed", err, logging.Fields{
		logging.FieldErrorKind: string(kind),
		"error_label":          label,
	})

	w.Header().Set(middleware.ErrorKindHeader, string(kind))
	h.writeJSONResponse(ctx, w, http.StatusInternalServerError, h.mapper.ToErrorResponse(label, err))
}

// writeJSONResponse encodes data before touching the status line. An encoding
// failure becomes the uniform 500 body instead of an empty 200.
func (h *PortfolioHandler) writeJSONResponse(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logging.ErrorWithError(ctx, "Failed to encode JSON response", err, logging.Fields{
			"status_code": statusCode,
		})

		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(dto.NewErrorResponse(dto.ErrorLabelValuation, entities.UnknownErrorMessage))
		statusCode = http.StatusInternalServerError
		w.Header().Set(middleware.ErrorKindHeader, string(entities.KindUnknownFailure))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.WarnWithError(ctx, "Failed to write response", err, nil)
	}
}
