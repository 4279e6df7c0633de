package interfaces

import (
	"context"
	"portfolio-value-service/internal/domain/entities"
)

// PriceSource obtiene cotizaciones desde un exchange.
// FetchTickers retorna todos los tickers publicados en una sola consulta, sin cache.
type PriceSource interface {
	FetchTickers(ctx context.Context) (entities.TickerSet, error)
}

// MarketSource lista los mercados disponibles en el exchange
type MarketSource interface {
	FetchMarkets(ctx context.Context) ([]entities.Market, error)
}

// Exchange agrupa ambas capacidades
type Exchange interface {
	PriceSource
	MarketSource

	// Name identifica al exchange en logs y métricas
	Name() string
}
