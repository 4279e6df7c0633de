package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Asset identifica una criptomoneda soportada por el servicio
type Asset string

const (
	AssetBTC  Asset = "BTC"
	AssetETH  Asset = "ETH"
	AssetBCH  Asset = "BCH"
	AssetLTC  Asset = "LTC"
	AssetUSDC Asset = "USDC"
	AssetUSDT Asset = "USDT"
)

// SupportedAssets lista los activos válidos en el orden en que se reportan al cliente
var SupportedAssets = []Asset{AssetBTC, AssetETH, AssetBCH, AssetLTC, AssetUSDC, AssetUSDT}

// FiatCurrency identifica una moneda local en la que se puede valorizar un portafolio
type FiatCurrency string

const (
	FiatCLP FiatCurrency = "CLP"
	FiatCOP FiatCurrency = "COP"
	FiatPEN FiatCurrency = "PEN"
)

// SupportedFiatCurrencies lista las monedas locales válidas
var SupportedFiatCurrencies = []FiatCurrency{FiatCLP, FiatCOP, FiatPEN}

// IsSupported reports whether the asset belongs to the closed set. Matching is case-sensitive.
func (a Asset) IsSupported() bool {
	return lo.Contains(SupportedAssets, a)
}

func (a Asset) String() string {
	return string(a)
}

// IsSupported reports whether the fiat currency belongs to the closed set. Matching is case-sensitive.
func (f FiatCurrency) IsSupported() bool {
	return lo.Contains(SupportedFiatCurrencies, f)
}

func (f FiatCurrency) String() string {
	return string(f)
}

// UnmarshalJSON never fails on a well-formed value. Strings decode as-is;
// null, false and 0 decode empty (reported later as a missing field); any other
// value keeps its text so the validator can report it as unsupported.
func (f *FiatCurrency) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*f = ""
	case string:
		*f = FiatCurrency(v)
	case bool:
		*f = ""
		if v {
			*f = "true"
		}
	case json.Number:
		*f = FiatCurrency(v.String())
		if n, err := strconv.ParseFloat(v.String(), 64); err == nil {
			if n == 0 {
				*f = ""
			} else {
				*f = FiatCurrency(strconv.FormatFloat(n, 'f', -1, 64))
			}
		}
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		*f = FiatCurrency(compact.String())
	}
	return nil
}

// AssetNames retorna los identificadores de activos como strings
func AssetNames() []string {
	return lo.Map(SupportedAssets, func(a Asset, _ int) string {
		return string(a)
	})
}

// FiatCurrencyNames retorna los identificadores de monedas locales como strings
func FiatCurrencyNames() []string {
	return lo.Map(SupportedFiatCurrencies, func(f FiatCurrency, _ int) string {
		return string(f)
	})
}

// ValidAssetOptions formats the asset list for user facing messages: "BTC, ETH, ..."
func ValidAssetOptions() string {
	return strings.Join(AssetNames(), ", ")
}

// ValidFiatOptions formats the fiat list for user facing messages: "CLP, COP, PEN"
func ValidFiatOptions() string {
	return strings.Join(FiatCurrencyNames(), ", ")
}
