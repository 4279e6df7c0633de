package services

import (
	"context"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/domain/interfaces"
	"portfolio-value-service/internal/infrastructure/logging"
	"portfolio-value-service/internal/infrastructure/metrics"
	"time"
)

// valuationService implements the ValuationService interface
type valuationService struct {
	exchange   interfaces.Exchange
	validator  *RequestValidator
	calculator *Calculator
}

// NewValuationService creates a new instance of the valuation service
func NewValuationService(exchange interfaces.Exchange) interfaces.ValuationService {
	return &valuationService{
		exchange:   exchange,
		validator:  NewRequestValidator(),
		calculator: NewCalculator(),
	}
}

// GetPortfolioValue runs validate → fetch → calculate. Validation failures
// return before any call to the exchange. Prices are fetched fresh on every call.
func (s *valuationService) GetPortfolioValue(ctx context.Context, req *entities.PortfolioRequest) (*entities.Valuation, error) {
	start := time.Now()
	fiat := fiatLabel(req)
	var assets []string
	if req != nil {
		assets = assetNames(req.Portfolio)
	}

	logging.Business().ValuationRequested(ctx, fiat, assets)

	if err := s.validator.Validate(req); err != nil {
		logging.Business().ValidationFailed(ctx, fiat, err.Error())
		return nil, s.fail(ctx, fiat, len(assets), start, err)
	}

	fetchStart := time.Now()
	tickers, err := s.exchange.FetchTickers(ctx)
	if err != nil {
		logging.ErrorWithError(ctx, "Failed to fetch tickers from price source", err, logging.Fields{
			"price_source":      s.exchange.Name(),
			"fetch_duration_ms": float64(time.Since(fetchStart).Nanoseconds()) / 1e6,
		})
		return nil, s.fail(ctx, fiat, len(assets), start, err)
	}

	logging.Debug(ctx, "Retrieved tickers from price source", logging.Fields{
		"price_source":      s.exchange.Name(),
		"tickers_count":     len(tickers),
		"fetch_duration_ms": float64(time.Since(fetchStart).Nanoseconds()) / 1e6,
	})

	total, err := s.calculator.Calculate(req, tickers)
	if err != nil {
		return nil, s.fail(ctx, fiat, len(assets), start, err)
	}

	metrics.RecordValuation(fiat, "", len(assets), time.Since(start))
	logging.Business().ValuationCompleted(ctx, fiat, len(assets), total)

	return &entities.Valuation{
		FiatCurrency: req.FiatCurrency,
		Total:        total,
		AssetCount:   len(assets),
	}, nil
}

// ListMarkets retorna los mercados del exchange en el orden recibido
func (s *valuationService) ListMarkets(ctx context.Context) ([]entities.Market, error) {
	markets, err := s.exchange.FetchMarkets(ctx)
	if err != nil {
		err = asValuationError(err)
		logging.ErrorWithError(ctx, "Failed to fetch markets from price source", err, logging.Fields{
			"price_source": s.exchange.Name(),
			"error_kind":   string(entities.KindOf(err)),
		})
		return nil, err
	}

	logging.Debug(ctx, "Retrieved markets from price source", logging.Fields{
		"price_source":  s.exchange.Name(),
		"markets_count": len(markets),
	})
	return markets, nil
}

// fail records the failed valuation and normalizes err into the error taxonomy
func (s *valuationService) fail(ctx context.Context, fiat string, assetCount int, start time.Time, err error) error {
	err = asValuationError(err)
	kind := string(entities.KindOf(err))

	metrics.RecordValuation(fiat, kind, assetCount, time.Since(start))
	logging.Business().ValuationFailed(ctx, fiat, kind, err)
	return err
}

// asValuationError wraps errors outside the taxonomy as UNKNOWN_FAILURE
func asValuationError(err error) error {
	if entities.KindOf(err) != entities.KindUnknownFailure {
		return err
	}
	return entities.NewValuationError(entities.KindUnknownFailure, entities.MessageOf(err), err)
}

// fiatLabel bounds the fiat label cardinality for logs and metrics
func fiatLabel(req *entities.PortfolioRequest) string {
	switch {
	case req == nil || req.FiatCurrency == "":
		return "none"
	case req.FiatCurrency.IsSupported():
		return req.FiatCurrency.String()
	default:
		return "unsupported"
	}
}

func assetNames(p *entities.Portfolio) []string {
	assets := p.Assets()
	names := make([]string, len(assets))
	for i, a := range assets {
		names[i] = a.String()
	}
	return names
}
