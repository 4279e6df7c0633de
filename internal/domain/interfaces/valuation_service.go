package interfaces

import (
	"context"
	"portfolio-value-service/internal/domain/entities"
)

// ValuationService define el caso de uso de valorización de portafolios
type ValuationService interface {
	// GetPortfolioValue valida el request, consulta precios y suma amount × last_price.
	// Todo error retornado es un *entities.ValuationError o se reporta como UNKNOWN_FAILURE.
	GetPortfolioValue(ctx context.Context, req *entities.PortfolioRequest) (*entities.Valuation, error)

	// ListMarkets retorna los mercados del exchange
	ListMarkets(ctx context.Context) ([]entities.Market, error)
}
