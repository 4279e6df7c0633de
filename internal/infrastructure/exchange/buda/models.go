package buda

import (
	"portfolio-value-service/internal/domain/entities"
)

// TickersResponse es la respuesta de GET /tickers.
// El puntero distingue un arreglo ausente o null de uno vacío.
type TickersResponse struct {
	Tickers *[]entities.Ticker `json:"tickers"`
}

func (r *TickersResponse) validate() error {
	if r.Tickers == nil {
		return ErrMissingTickers
	}
	return nil
}

// MarketsResponse es la respuesta de GET /markets
type MarketsResponse struct {
	Markets *[]entities.Market `json:"markets"`
}

func (r *MarketsResponse) validate() error {
	if r.Markets == nil {
		return ErrMissingMarkets
	}
	return nil
}

type validatable interface {
	validate() error
}
