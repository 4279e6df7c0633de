package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrPortfolioNotObject is returned when the portfolio field is not a JSON object
var ErrPortfolioNotObject = errors.New("portfolio must be a JSON object")

// Amount es la cantidad declarada de un activo. Valid es false cuando el valor
// recibido no pudo interpretarse como número (null, booleanos, objetos, textos no numéricos).
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount crea una cantidad válida
func NewAmount(value float64) Amount {
	return Amount{Value: value, Valid: true}
}

// Present reports whether the amount counts as provided. Zero and NaN do not.
func (a Amount) Present() bool {
	return a.Valid && a.Value != 0 && !math.IsNaN(a.Value)
}

// UnmarshalJSON accepts numbers and numeric strings. Any other JSON value
// decodes to an invalid Amount instead of failing the whole request.
func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*a = Amount{}
	switch v := raw.(type) {
	case json.Number:
		if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
			*a = NewAmount(f)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*a = NewAmount(f)
		}
	}
	return nil
}

// MarshalJSON writes invalid amounts as null
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// Holding es una entrada del portafolio
type Holding struct {
	Asset  Asset  `json:"asset"`
	Amount Amount `json:"amount"`
}

// Portfolio mantiene las tenencias en el orden en que llegaron en el request.
// Una clave repetida conserva su primera posición y el último valor recibido.
type Portfolio struct {
	holdings []Holding
}

// NewPortfolio construye un portafolio a partir de tenencias ordenadas
func NewPortfolio(holdings ...Holding) *Portfolio {
	p := &Portfolio{}
	for _, h := range holdings {
		p.Set(h.Asset, h.Amount)
	}
	return p
}

// Set agrega o reemplaza la cantidad de un activo
func (p *Portfolio) Set(asset Asset, amount Amount) {
	for i := range p.holdings {
		if p.holdings[i].Asset == asset {
			p.holdings[i].Amount = amount
			return
		}
	}
	p.holdings = append(p.holdings, Holding{Asset: asset, Amount: amount})
}

// Holdings returns a copy of the holdings in request order
func (p *Portfolio) Holdings() []Holding {
	if p == nil {
		return nil
	}
	out := make([]Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}

// Assets returns the asset keys in request order
func (p *Portfolio) Assets() []Asset {
	if p == nil {
		return nil
	}
	assets := make([]Asset, len(p.holdings))
	for i, h := range p.holdings {
		assets[i] = h.Asset
	}
	return assets
}

// Len returns the number of distinct asset keys
func (p *Portfolio) Len() int {
	if p == nil {
		return 0
	}
	return len(p.holdings)
}

// UnmarshalJSON walks the object token by token so key order survives decoding
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrPortfolioNotObject
	}

	p.holdings = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected portfolio key token %v", keyTok)
		}

		var amount Amount
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("invalid amount for %s: %w", key, err)
		}
		p.Set(Asset(key), amount)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes the holdings back as an object preserving order
func (p Portfolio) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range p.holdings {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(h.Asset))
		if err != nil {
			return nil, err
		}
		value, err := h.Amount.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PortfolioRequest es la entrada de una valorización
type PortfolioRequest struct {
	Portfolio    *Portfolio   `json:"portfolio"`
	FiatCurrency FiatCurrency `json:"fiat_currency"`
}

// Valuation es el resultado de una valorización exitosa
type Valuation struct {
	FiatCurrency FiatCurrency
	Total        float64
	AssetCount   int
}
