package logging

import (
	"context"
	"fmt"
)

// BaseDomainLogger implementa funcionalidad común para loggers de dominio
type BaseDomainLogger struct {
	Logger
	domain string
}

// Domain retorna el dominio del logger
func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

// logWithDomain agrega el campo de dominio a los logs
func (dl *BaseDomainLogger) logWithDomain(ctx context.Context, level LogLevel, message string, fields Fields) {
	if fields == nil {
		fields = make(Fields)
	}
	fields[FieldDomain] = dl.domain

	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelInfo:
		dl.Logger.Info(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, enrichWithError(fields, err))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, enrichWithError(fields, err))
}

// levelForStatus: 4xx warn, 5xx error
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// HTTPDomainLogger especializado para logs HTTP
type HTTPDomainLogger struct {
	*BaseDomainLogger
}

// NewHTTPLogger crea un nuevo logger HTTP
func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "http",
		},
	}
}

func (hl *HTTPDomainLogger) RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, 0).
		WithUserAgent(userAgent).
		WithRemoteIP(remoteIP).
		Build()

	hl.Debug(ctx, "HTTP request received", fields)
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithCustomField(FieldDuration, duration).
		Build()

	hl.logWithDomain(ctx, levelForStatus(statusCode), "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithCustomField(FieldDuration, duration).
		Build()

	hl.ErrorWithError(ctx, "HTTP request failed", err, fields)
}

// ExternalAPIDomainLogger especializado para APIs externas
type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

// NewExternalAPILogger crea un nuevo logger para APIs externas
func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "external_api",
		},
	}
}

func (el *ExternalAPIDomainLogger) RequestStarted(ctx context.Context, service, endpoint, method string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldExternalService, service).
		WithCustomField(FieldExternalEndpoint, endpoint).
		WithCustomField(FieldExternalMethod, method).
		Build()

	el.Debug(ctx, "External API request started", fields)
}

func (el *ExternalAPIDomainLogger) RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.logWithDomain(ctx, levelForStatus(statusCode), "External API request completed", fields)
}

func (el *ExternalAPIDomainLogger) RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.ErrorWithError(ctx, "External API request failed", err, fields)
}

// BusinessDomainLogger especializado para lógica de negocio
type BusinessDomainLogger struct {
	*BaseDomainLogger
}

// NewBusinessLogger crea un nuevo logger de negocio
func NewBusinessLogger(baseLogger Logger) BusinessLogger {
	return &BusinessDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "business",
		},
	}
}

func (bl *BusinessDomainLogger) ValuationRequested(ctx context.Context, fiat string, assets []string) {
	fields := NewFieldBuilder().
		WithValuation(fiat, len(assets)).
		WithCustomField(FieldAssets, assets).
		Build()

	bl.Info(ctx, "Portfolio valuation requested", fields)
}

func (bl *BusinessDomainLogger) ValuationCompleted(ctx context.Context, fiat string, assetCount int, total float64) {
	fields := NewFieldBuilder().
		WithValuation(fiat, assetCount).
		WithCustomField(FieldTotal, total).
		Build()

	bl.Info(ctx, "Portfolio valuation completed", fields)
}

func (bl *BusinessDomainLogger) ValuationFailed(ctx context.Context, fiat string, kind string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldFiatCurrency, fiat).
		WithCustomField(FieldErrorKind, kind).
		Build()

	bl.WarnWithError(ctx, "Portfolio valuation failed", err, fields)
}

func (bl *BusinessDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField("input", input).
		WithCustomField("reason", reason).
		WithCustomField(FieldValidation, "failed").
		Build()

	bl.Warn(ctx, "Input validation failed", fields)
}

// SecurityDomainLogger especializado para seguridad
type SecurityDomainLogger struct {
	*BaseDomainLogger
}

// NewSecurityLogger crea un nuevo logger de seguridad
func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{
		BaseDomainLogger: &BaseDomainLogger{
			Logger: baseLogger,
			domain: "security",
		},
	}
}

func (sl *SecurityDomainLogger) InvalidRequest(ctx context.Context, clientIP string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField("reason", reason).
		Build()

	sl.Warn(ctx, "Invalid request received", fields)
}

func (sl *SecurityDomainLogger) SuspiciousActivity(ctx context.Context, clientIP string, activity string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldSuspiciousReason, activity).
		Build()

	sl.Warn(ctx, "Suspicious activity detected", fields)
}

func (sl *SecurityDomainLogger) PanicRecovered(ctx context.Context, path string, recovered interface{}) {
	fields := NewFieldBuilder().
		WithCustomField(FieldHTTPPath, path).
		WithCustomField("panic", fmt.Sprint(recovered)).
		Build()

	sl.Error(ctx, "Recovered from panic while serving request", fields)
}
