package entities

// Market describe un mercado listado por el exchange
type Market struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	BaseCurrency       string    `json:"base_currency"`
	QuoteCurrency      string    `json:"quote_currency"`
	MinimumOrderAmount PricePair `json:"minimum_order_amount"`
	Disabled           bool      `json:"disabled"`
	Illiquid           bool      `json:"illiquid"`
}

// Supported reports whether both sides of the market are handled by the valuation
func (m Market) Supported() bool {
	return Asset(m.BaseCurrency).IsSupported() && FiatCurrency(m.QuoteCurrency).IsSupported()
}
