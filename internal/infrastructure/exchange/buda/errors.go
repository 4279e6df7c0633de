package buda

import "errors"

var (
	ErrRetryableRequest = errors.New("retryable buda API request failed")
	ErrNonRetryable     = errors.New("non-retryable buda API error")
	ErrMissingTickers   = errors.New("response has no tickers array")
	ErrMissingMarkets   = errors.New("response has no markets array")
)
