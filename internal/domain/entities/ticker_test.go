package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketID(t *testing.T) {
	assert.Equal(t, "BTC-CLP", MarketID(AssetBTC, FiatCLP))
	assert.Equal(t, "USDT-PEN", MarketID(AssetUSDT, FiatPEN))
}

func TestTicker_UnmarshalJSON(t *testing.T) {
	raw := `{
		"market_id": "BTC-CLP",
		"price_variation_24h": "0.01",
		"price_variation_7d": "-0.02",
		"last_price": ["50000000.0", "CLP"]
	}`

	var ticker Ticker
	require.NoError(t, json.Unmarshal([]byte(raw), &ticker))

	assert.Equal(t, "BTC-CLP", ticker.MarketID)
	assert.Equal(t, "50000000.0", ticker.LastPrice.Amount)
	assert.Equal(t, "CLP", ticker.LastPrice.Currency)
	assert.Equal(t, "0.01", ticker.PriceVariation24h)
	assert.Equal(t, "-0.02", ticker.PriceVariation7d)
}

func TestPricePair_ShortArrays(t *testing.T) {
	var empty PricePair
	require.NoError(t, json.Unmarshal([]byte(`[]`), &empty))
	assert.Equal(t, "", empty.Amount)

	var single PricePair
	require.NoError(t, json.Unmarshal([]byte(`["12"]`), &single))
	assert.Equal(t, "12", single.Amount)
	assert.Equal(t, "", single.Currency)
}

func TestTickerSet_FindReturnsFirstMatch(t *testing.T) {
	set := TickerSet{
		{MarketID: "ETH-CLP", LastPrice: PricePair{Amount: "3000000"}},
		{MarketID: "BTC-CLP", LastPrice: PricePair{Amount: "1"}},
		{MarketID: "BTC-CLP", LastPrice: PricePair{Amount: "2"}},
	}

	ticker, ok := set.Find("BTC-CLP")
	require.True(t, ok)
	assert.Equal(t, "1", ticker.LastPrice.Amount)

	_, ok = set.Find("btc-clp")
	assert.False(t, ok, "market ids are case-sensitive")

	assert.Equal(t, []string{"ETH-CLP", "BTC-CLP", "BTC-CLP"}, set.MarketIDs())
}

func TestCurrencies_Supported(t *testing.T) {
	assert.True(t, AssetBTC.IsSupported())
	assert.False(t, Asset("btc").IsSupported())
	assert.False(t, Asset("NICO").IsSupported())

	assert.True(t, FiatPEN.IsSupported())
	assert.False(t, FiatCurrency("USD").IsSupported())

	assert.Equal(t, "BTC, ETH, BCH, LTC, USDC, USDT", ValidAssetOptions())
	assert.Equal(t, "CLP, COP, PEN", ValidFiatOptions())
}

func TestMarket_Supported(t *testing.T) {
	assert.True(t, Market{BaseCurrency: "BTC", QuoteCurrency: "CLP"}.Supported())
	assert.False(t, Market{BaseCurrency: "BTC", QuoteCurrency: "ARS"}.Supported())
	assert.False(t, Market{BaseCurrency: "XRP", QuoteCurrency: "CLP"}.Supported())
}

func TestFiatCurrency_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FiatCurrency
	}{
		{name: "Válido - string", input: `"COP"`, expected: FiatCOP},
		{name: "Válido - string desconocido", input: `"usd"`, expected: "usd"},
		{name: "Vacío - null", input: `null`, expected: ""},
		{name: "Vacío - false", input: `false`, expected: ""},
		{name: "Vacío - cero", input: `0`, expected: ""},
		{name: "Texto - número", input: `12`, expected: "12"},
		{name: "Texto - decimal", input: `1.50`, expected: "1.5"},
		{name: "Texto - true", input: `true`, expected: "true"},
		{name: "Texto - objeto", input: `{ "a": 1 }`, expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FiatCurrency
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.expected, f)
		})
	}
}
