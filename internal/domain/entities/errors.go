package entities

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica las fallas de una valorización
type ErrorKind string

const (
	KindMalformedRequest    ErrorKind = "MALFORMED_REQUEST"
	KindUnsupportedCurrency ErrorKind = "UNSUPPORTED_CURRENCY"
	KindUnsupportedAsset    ErrorKind = "UNSUPPORTED_ASSET"
	KindSourceUnavailable   ErrorKind = "SOURCE_UNAVAILABLE"
	KindMalformedResponse   ErrorKind = "MALFORMED_RESPONSE"
	KindTickerNotFound      ErrorKind = "TICKER_NOT_FOUND"
	KindAmountNotFound      ErrorKind = "AMOUNT_NOT_FOUND"
	KindUnknownFailure      ErrorKind = "UNKNOWN_FAILURE"
)

// UnknownErrorMessage is reported when a failure carries no descriptive text
const UnknownErrorMessage = "Unknown error"

// ValuationError es el error de dominio de una valorización.
// Message es el texto que se devuelve al cliente.
type ValuationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ValuationError) Error() string {
	return e.Message
}

func (e *ValuationError) Unwrap() error {
	return e.Err
}

// Is matches any ValuationError of the same kind, so the kind sentinels below
// work with errors.Is regardless of message.
func (e *ValuationError) Is(target error) bool {
	t, ok := target.(*ValuationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels por tipo de error, para usar con errors.Is
var (
	ErrMalformedRequest    = &ValuationError{Kind: KindMalformedRequest}
	ErrUnsupportedCurrency = &ValuationError{Kind: KindUnsupportedCurrency}
	ErrUnsupportedAsset    = &ValuationError{Kind: KindUnsupportedAsset}
	ErrSourceUnavailable   = &ValuationError{Kind: KindSourceUnavailable}
	ErrMalformedResponse   = &ValuationError{Kind: KindMalformedResponse}
	ErrTickerNotFound      = &ValuationError{Kind: KindTickerNotFound}
	ErrAmountNotFound      = &ValuationError{Kind: KindAmountNotFound}
	ErrUnknownFailure      = &ValuationError{Kind: KindUnknownFailure}
)

// NewValuationError crea un error de dominio con mensaje
func NewValuationError(kind ErrorKind, message string, cause error) *ValuationError {
	return &ValuationError{Kind: kind, Message: message, Err: cause}
}

// MissingFieldsError: the request lacks portfolio or fiat_currency
func MissingFieldsError(cause error) *ValuationError {
	return NewValuationError(KindMalformedRequest, "Invalid request: missing required fields", cause)
}

// UnsupportedCurrencyError names the offending fiat currency and the valid options
func UnsupportedCurrencyError(fiat FiatCurrency) *ValuationError {
	return NewValuationError(KindUnsupportedCurrency,
		fmt.Sprintf("Invalid fiat currency: %s. Valid options are: %s", fiat, ValidFiatOptions()), nil)
}

// UnsupportedAssetError names the offending asset key and the valid options
func UnsupportedAssetError(asset Asset) *ValuationError {
	return NewValuationError(KindUnsupportedAsset,
		fmt.Sprintf("Invalid cryptocurrency: %s. Valid options are: %s", asset, ValidAssetOptions()), nil)
}

// TickerNotFoundError names the market that had no usable quote
func TickerNotFoundError(asset Asset, fiat FiatCurrency) *ValuationError {
	return NewValuationError(KindTickerNotFound,
		fmt.Sprintf("Ticker not found for %s", MarketID(asset, fiat)), nil)
}

// AmountNotFoundError names the asset whose amount was zero or missing
func AmountNotFoundError(asset Asset) *ValuationError {
	return NewValuationError(KindAmountNotFound,
		fmt.Sprintf("Portfolio amount not found for %s", asset), nil)
}

// ValueOutOfRangeError: adding the asset pushed the total past float64 range
func ValueOutOfRangeError(asset Asset) *ValuationError {
	return NewValuationError(KindUnknownFailure,
		fmt.Sprintf("Portfolio value out of range at %s", asset), nil)
}

// KindOf extracts the failure kind. Errors outside the taxonomy are UNKNOWN_FAILURE.
func KindOf(err error) ErrorKind {
	var ve *ValuationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindUnknownFailure
}

// MessageOf returns the client facing text of err
func MessageOf(err error) string {
	if err == nil {
		return UnknownErrorMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
