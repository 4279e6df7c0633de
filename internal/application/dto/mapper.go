package dto

import (
	"portfolio-value-service/internal/domain/entities"

	"github.com/samber/lo"
)

// ValuationMapper maneja la conversión entre entidades del dominio y DTOs
type ValuationMapper struct{}

// NewValuationMapper crea una nueva instancia del mapper
func NewValuationMapper() *ValuationMapper {
	return &ValuationMapper{}
}

// ToPortfolioValueResponse convierte una valorización en la respuesta exitosa
func (m *ValuationMapper) ToPortfolioValueResponse(v *entities.Valuation) *PortfolioValueResponse {
	if v == nil {
		return &PortfolioValueResponse{}
	}
	return &PortfolioValueResponse{PortfolioValue: v.Total}
}

// ToErrorResponse arma el cuerpo de error con la etiqueta fija del endpoint.
// Un error sin texto se reporta como "Unknown error".
func (m *ValuationMapper) ToErrorResponse(label string, err error) *ErrorResponse {
	return NewErrorResponse(label, entities.MessageOf(err))
}

// ToMarketsResponse convierte los mercados del exchange, en el orden recibido
func (m *ValuationMapper) ToMarketsResponse(markets []entities.Market) *MarketsResponse {
	return &MarketsResponse{
		Markets: lo.Map(markets, func(mk entities.Market, _ int) MarketData {
			return MarketData{
				ID:            mk.ID,
				Name:          mk.Name,
				BaseCurrency:  mk.BaseCurrency,
				QuoteCurrency: mk.QuoteCurrency,
				Disabled:      mk.Disabled,
			}
		}),
	}
}

// ToCurrenciesResponse lista los activos y monedas soportadas
func (m *ValuationMapper) ToCurrenciesResponse() *CurrenciesResponse {
	return &CurrenciesResponse{
		Assets:         entities.AssetNames(),
		FiatCurrencies: entities.FiatCurrencyNames(),
	}
}
