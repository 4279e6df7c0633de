package services

import (
	"fmt"
	"math"
	"portfolio-value-service/internal/domain/entities"
	"strconv"
)

// Calculator suma amount × last_price por cada tenencia del portafolio
type Calculator struct{}

// NewCalculator crea una calculadora
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate values req against tickers. For each holding, in request order:
//  1. the first ticker with market id "<ASSET>-<FIAT>" must exist and carry a price
//  2. the price must parse as a finite float
//  3. the amount must be present; zero counts as missing
//  4. the running total must stay finite
//
// The first failing holding aborts the whole valuation. An empty portfolio is worth 0.
func (c *Calculator) Calculate(req *entities.PortfolioRequest, tickers entities.TickerSet) (float64, error) {
	var total float64

	for _, h := range req.Portfolio.Holdings() {
		marketID := entities.MarketID(h.Asset, req.FiatCurrency)

		ticker, ok := tickers.Find(marketID)
		if !ok || ticker.LastPrice.Amount == "" {
			return 0, entities.TickerNotFoundError(h.Asset, req.FiatCurrency)
		}

		// ParseFloat acepta "NaN" e "Inf"
		price, err := strconv.ParseFloat(ticker.LastPrice.Amount, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			return 0, entities.NewValuationError(entities.KindMalformedResponse,
				fmt.Sprintf("Invalid price for %s: %s", marketID, ticker.LastPrice.Amount), err)
		}

		if !h.Amount.Present() {
			return 0, entities.AmountNotFoundError(h.Asset)
		}

		total += h.Amount.Value * price
		if math.IsInf(total, 0) || math.IsNaN(total) {
			return 0, entities.ValueOutOfRangeError(h.Asset)
		}
	}

	return total, nil
}
