package entities

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolio_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var p Portfolio
	err := json.Unmarshal([]byte(`{"USDT":1000,"BTC":0.5,"ETH":2}`), &p)
	require.NoError(t, err)

	assert.Equal(t, []Asset{AssetUSDT, AssetBTC, AssetETH}, p.Assets())
	assert.Equal(t, 3, p.Len())

	holdings := p.Holdings()
	assert.Equal(t, 1000.0, holdings[0].Amount.Value)
	assert.Equal(t, 0.5, holdings[1].Amount.Value)
	assert.Equal(t, 2.0, holdings[2].Amount.Value)
}

func TestPortfolio_UnmarshalJSON_DuplicateKeyLastWins(t *testing.T) {
	var p Portfolio
	err := json.Unmarshal([]byte(`{"BTC":1,"ETH":2,"BTC":3}`), &p)
	require.NoError(t, err)

	assert.Equal(t, []Asset{AssetBTC, AssetETH}, p.Assets())
	assert.Equal(t, 3.0, p.Holdings()[0].Amount.Value)
}

func TestPortfolio_UnmarshalJSON_Empty(t *testing.T) {
	var p Portfolio
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.Equal(t, 0, p.Len())
}

func TestPortfolio_UnmarshalJSON_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"BTC"`, `12`} {
		t.Run(raw, func(t *testing.T) {
			var p Portfolio
			err := json.Unmarshal([]byte(raw), &p)
			assert.Error(t, err)
		})
	}
}

func TestPortfolioRequest_NullPortfolio(t *testing.T) {
	var req PortfolioRequest
	require.NoError(t, json.Unmarshal([]byte(`{"portfolio":null,"fiat_currency":"CLP"}`), &req))
	assert.Nil(t, req.Portfolio)
	assert.Equal(t, FiatCLP, req.FiatCurrency)
}

func TestPortfolioRequest_MissingFields(t *testing.T) {
	var req PortfolioRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.Nil(t, req.Portfolio)
	assert.Empty(t, req.FiatCurrency)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		valid   bool
		value   float64
		present bool
	}{
		{name: "entero", raw: `1`, valid: true, value: 1, present: true},
		{name: "decimal", raw: `0.00000001`, valid: true, value: 0.00000001, present: true},
		{name: "negativo", raw: `-2.5`, valid: true, value: -2.5, present: true},
		{name: "cero", raw: `0`, valid: true, value: 0, present: false},
		{name: "string numérico", raw: `"1.5"`, valid: true, value: 1.5, present: true},
		{name: "string vacío", raw: `""`, valid: false, present: false},
		{name: "string no numérico", raw: `"abc"`, valid: false, present: false},
		{name: "null", raw: `null`, valid: false, present: false},
		{name: "booleano", raw: `true`, valid: false, present: false},
		{name: "objeto", raw: `{"a":1}`, valid: false, present: false},
		{name: "arreglo", raw: `[1]`, valid: false, present: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))
			assert.Equal(t, tt.valid, a.Valid)
			if tt.valid {
				assert.Equal(t, tt.value, a.Value)
			}
			assert.Equal(t, tt.present, a.Present())
		})
	}
}

func TestAmount_NaNIsNotPresent(t *testing.T) {
	assert.False(t, NewAmount(math.NaN()).Present())
}

func TestPortfolio_MarshalJSON_RoundTripsOrder(t *testing.T) {
	p := NewPortfolio(
		Holding{Asset: AssetETH, Amount: NewAmount(2)},
		Holding{Asset: AssetBTC, Amount: Amount{}},
	)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ETH":2,"BTC":null}`, string(data))
	assert.Equal(t, `{"ETH":2,"BTC":null}`, string(data))
}
