package entities

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// MarketID arma el identificador de mercado del exchange: "<ASSET>-<FIAT>"
func MarketID(asset Asset, fiat FiatCurrency) string {
	return fmt.Sprintf("%s-%s", asset, fiat)
}

// PricePair es un monto expresado como [monto, moneda], tal como lo entrega el exchange
type PricePair struct {
	Amount   string
	Currency string
}

// UnmarshalJSON decodes the two element array form ["50000000.0","CLP"].
// Missing elements are left empty.
func (p *PricePair) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}

	*p = PricePair{}
	if len(parts) > 0 {
		p.Amount = parts[0]
	}
	if len(parts) > 1 {
		p.Currency = parts[1]
	}
	return nil
}

// MarshalJSON writes the pair back in array form
func (p PricePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{p.Amount, p.Currency})
}

// Ticker es la última cotización de un mercado
type Ticker struct {
	MarketID          string    `json:"market_id"`
	LastPrice         PricePair `json:"last_price"`
	PriceVariation24h string    `json:"price_variation_24h"`
	PriceVariation7d  string    `json:"price_variation_7d"`
}

// TickerSet es la lista completa de tickers devuelta en una consulta
type TickerSet []Ticker

// Find returns the first ticker whose market id matches exactly
func (ts TickerSet) Find(marketID string) (Ticker, bool) {
	return lo.Find(ts, func(t Ticker) bool {
		return t.MarketID == marketID
	})
}

// MarketIDs lists the market ids present in the set, in order
func (ts TickerSet) MarketIDs() []string {
	return lo.Map(ts, func(t Ticker, _ int) string {
		return t.MarketID
	})
}
