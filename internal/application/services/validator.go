package services

import (
	"portfolio-value-service/internal/domain/entities"
)

// RequestValidator verifica la forma del request y la pertenencia de sus valores
// a los conjuntos soportados. No revisa montos.
type RequestValidator struct{}

// NewRequestValidator crea un validador
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Validate checks, in order: required fields, fiat currency, then each asset key
// in request order. The first failure is returned.
func (v *RequestValidator) Validate(req *entities.PortfolioRequest) error {
	if req == nil || req.Portfolio == nil || req.FiatCurrency == "" {
		return entities.MissingFieldsError(nil)
	}

	if !req.FiatCurrency.IsSupported() {
		return entities.UnsupportedCurrencyError(req.FiatCurrency)
	}

	for _, asset := range req.Portfolio.Assets() {
		if !asset.IsSupported() {
			return entities.UnsupportedAssetError(asset)
		}
	}

	return nil
}
