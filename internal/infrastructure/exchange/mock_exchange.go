package exchange

import (
	"context"
	"math/rand"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/infrastructure/logging"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// MockName identifica al exchange simulado en logs y métricas
const MockName = "mock"

// MockExchange implementa interfaces.Exchange para testing y development.
// Retorna tickers falsos pero realistas para todas las combinaciones activo/moneda.
type MockExchange struct {
	mu         sync.RWMutex
	basePrices map[string]float64 // Precio base por market id
	variance   float64            // Variación porcentual para simular volatilidad
}

// NewMockExchange crea una nueva instancia del mock exchange
func NewMockExchange() *MockExchange {
	return &MockExchange{
		basePrices: map[string]float64{
			"BTC-CLP":  58000000.0,
			"BTC-COP":  250000000.0,
			"BTC-PEN":  235000.0,
			"ETH-CLP":  3000000.0,
			"ETH-COP":  13000000.0,
			"ETH-PEN":  12000.0,
			"BCH-CLP":  350000.0,
			"BCH-COP":  1500000.0,
			"BCH-PEN":  1400.0,
			"LTC-CLP":  80000.0,
			"LTC-COP":  340000.0,
			"LTC-PEN":  320.0,
			"USDC-CLP": 940.0,
			"USDC-COP": 4000.0,
			"USDC-PEN": 3.75,
			"USDT-CLP": 945.0,
			"USDT-COP": 4010.0,
			"USDT-PEN": 3.76,
		},
		variance: 0.02, // ±2%
	}
}

// Name identifica al exchange
func (m *MockExchange) Name() string {
	return MockName
}

// FetchTickers retorna un ticker por cada mercado configurado, ordenados por market id
func (m *MockExchange) FetchTickers(ctx context.Context) (entities.TickerSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tickers := make(entities.TickerSet, 0, len(m.basePrices))
	for _, id := range m.marketIDs() {
		price := m.basePrices[id]
		if m.variance > 0 {
			price *= 1 + (rand.Float64()*2-1)*m.variance
		}
		_, quote, _ := strings.Cut(id, "-")

		tickers = append(tickers, entities.Ticker{
			MarketID:          id,
			LastPrice:         entities.PricePair{Amount: strconv.FormatFloat(price, 'f', 2, 64), Currency: quote},
			PriceVariation24h: "0.0",
			PriceVariation7d:  "0.0",
		})
	}

	logging.Debug(ctx, "MockExchange: Generated mock tickers", logging.Fields{
		"tickers_count": len(tickers),
		"variance":      m.variance,
	})

	return tickers, nil
}

// FetchMarkets retorna un mercado por cada par configurado
func (m *MockExchange) FetchMarkets(ctx context.Context) ([]entities.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	markets := make([]entities.Market, 0, len(m.basePrices))
	for _, id := range m.marketIDs() {
		base, quote, _ := strings.Cut(id, "-")
		markets = append(markets, entities.Market{
			ID:                 id,
			Name:               strings.ToLower(id),
			BaseCurrency:       base,
			QuoteCurrency:      quote,
			MinimumOrderAmount: entities.PricePair{Amount: "0.0", Currency: base},
		})
	}
	return markets, nil
}

// SetPrice agrega o reemplaza el precio base de un mercado (útil para testing)
func (m *MockExchange) SetPrice(marketID string, basePrice float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.basePrices[marketID] = basePrice
}

// SetVariance configura la variación porcentual; 0 entrega precios fijos
func (m *MockExchange) SetVariance(variance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variance = variance
}

// marketIDs lista los mercados en orden estable: activos y monedas en el orden soportado,
// seguidos por los mercados agregados con SetPrice
func (m *MockExchange) marketIDs() []string {
	ids := make([]string, 0, len(m.basePrices))
	seen := make(map[string]bool, len(m.basePrices))
	for _, asset := range entities.SupportedAssets {
		for _, fiat := range entities.SupportedFiatCurrencies {
			id := entities.MarketID(asset, fiat)
			if _, ok := m.basePrices[id]; ok {
				ids = append(ids, id)
				seen[id] = true
			}
		}
	}

	extra := lo.Filter(lo.Keys(m.basePrices), func(id string, _ int) bool {
		return !seen[id]
	})
	slices.Sort(extra)
	return append(ids, extra...)
}
