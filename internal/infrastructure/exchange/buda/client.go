package buda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/infrastructure/config"
	"portfolio-value-service/internal/infrastructure/logging"
	"portfolio-value-service/internal/infrastructure/metrics"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	ServiceName      = "buda"
	DefaultBaseURL   = "https://www.buda.com/api/v2"
	DefaultTimeout   = 30 * time.Second
	TickersEndpoint  = "/tickers"
	MarketsEndpoint  = "/markets"
	maxResponseBytes = 10 << 20
)

// Client implementa interfaces.Exchange contra la API pública de Buda.com.
// Cada llamada consulta al exchange; no hay cache.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	maxAttempts   uint
	retryDelay    time.Duration
	maxRetryDelay time.Duration
}

// NewClient crea un cliente con la configuración por defecto: un solo intento
func NewClient() *Client {
	return &Client{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		maxAttempts: 1,
	}
}

// NewClientWithConfig crea un cliente a partir de la configuración del price source
func NewClientWithConfig(cfg config.PriceSourceConfig) *Client {
	attempts := uint(1)
	if cfg.MaxAttempts > 1 {
		attempts = uint(cfg.MaxAttempts)
	}

	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		maxAttempts:   attempts,
		retryDelay:    cfg.RetryDelay,
		maxRetryDelay: cfg.MaxRetryDelay,
	}
}

// Name identifica al exchange en logs y métricas
func (c *Client) Name() string {
	return ServiceName
}

// FetchTickers obtiene todos los tickers publicados con una sola consulta GET /tickers
func (c *Client) FetchTickers(ctx context.Context) (entities.TickerSet, error) {
	var resp TickersResponse
	if err := c.get(ctx, TickersEndpoint, &resp); err != nil {
		return nil, err
	}
	return entities.TickerSet(*resp.Tickers), nil
}

// FetchMarkets lista los mercados del exchange con GET /markets
func (c *Client) FetchMarkets(ctx context.Context) ([]entities.Market, error) {
	var resp MarketsResponse
	if err := c.get(ctx, MarketsEndpoint, &resp); err != nil {
		return nil, err
	}
	return *resp.Markets, nil
}

// get ejecuta la consulta aplicando la política de reintentos configurada.
// Con maxAttempts = 1 se hace exactamente una llamada.
func (c *Client) get(ctx context.Context, endpoint string, out validatable) error {
	err := retry.Do(
		func() error {
			return c.doRequest(ctx, endpoint, out)
		},
		retry.Attempts(c.maxAttempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(c.maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordExternalAPIRetry(ServiceName, endpoint, int(n+1))

			logging.Warn(ctx, "Buda API retry attempt", logging.Fields{
				"service":      ServiceName,
				"endpoint":     endpoint,
				"attempt":      n + 1,
				"max_attempts": c.maxAttempts,
				"error":        err.Error(),
			})
		}),
	)
	if err == nil {
		return nil
	}

	var ve *entities.ValuationError
	if errors.As(err, &ve) {
		return ve
	}
	// retry-go devuelve el error del contexto si se cancela entre intentos
	return entities.NewValuationError(entities.KindSourceUnavailable, err.Error(), err)
}

// doRequest realiza un único GET y decodifica el cuerpo en out
func (c *Client) doRequest(ctx context.Context, endpoint string, out validatable) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return entities.NewValuationError(entities.KindSourceUnavailable, err.Error(),
			fmt.Errorf("%w: failed to create request: %w", ErrNonRetryable, err))
	}
	req.Header.Set("Accept", "application/json")

	logging.ExternalAPI().RequestStarted(ctx, ServiceName, endpoint, http.MethodGet)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)
	durationMs := float64(requestDuration.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordExternalAPICall(ServiceName, endpoint, 0, requestDuration)
		logging.ExternalAPI().RequestFailed(ctx, ServiceName, endpoint, 0, err, durationMs)

		sentinel := ErrRetryableRequest
		if errors.Is(err, context.Canceled) {
			sentinel = ErrNonRetryable
		}
		return entities.NewValuationError(entities.KindSourceUnavailable, err.Error(),
			fmt.Errorf("%w: %w", sentinel, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(ServiceName, endpoint, resp.StatusCode, requestDuration)
	logging.ExternalRequest(ctx, ServiceName, endpoint, durationMs, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

		sentinel := ErrNonRetryable
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			sentinel = ErrRetryableRequest
		}
		return entities.NewValuationError(entities.KindSourceUnavailable,
			fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
			fmt.Errorf("%w: HTTP %d", sentinel, resp.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return malformedResponse(err)
	}
	if err := out.validate(); err != nil {
		return malformedResponse(err)
	}
	return nil
}

func malformedResponse(err error) *entities.ValuationError {
	return entities.NewValuationError(entities.KindMalformedResponse,
		fmt.Sprintf("Invalid response from price source: %v", err),
		fmt.Errorf("%w: %w", ErrNonRetryable, err))
}

// isRetryableError determina si un error debe disparar un reintento
func isRetryableError(err error) bool {
	return errors.Is(err, ErrRetryableRequest)
}
