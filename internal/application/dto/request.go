package dto

import (
	"encoding/json"
	"io"
	"portfolio-value-service/internal/domain/entities"
)

// PortfolioValueRequest documenta el cuerpo de POST /api/v1/portfolio/value.
// El handler decodifica directamente a entities.PortfolioRequest para conservar
// el orden de las claves del portafolio.
// @Description Portfolio valuation request
type PortfolioValueRequest struct {
	Portfolio    map[string]float64 `json:"portfolio" validate:"required" example:"BTC:0.5,ETH:2.0,USDT:1000"` // Amount held per asset
	FiatCurrency string             `json:"fiat_currency" validate:"required" example:"CLP" enums:"CLP,COP,PEN"` // Target fiat currency
}

// DecodePortfolioRequest lee un PortfolioRequest desde un cuerpo JSON.
// Cualquier falla de decodificación (cuerpo vacío, JSON inválido, tipos erróneos)
// se reporta como MALFORMED_REQUEST.
func DecodePortfolioRequest(body io.Reader) (*entities.PortfolioRequest, error) {
	var req entities.PortfolioRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, entities.MissingFieldsError(err)
	}
	return &req, nil
}
