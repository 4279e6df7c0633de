package logging

import (
	"context"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	// Métodos básicos de logging por nivel
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	// Métodos con error incluido
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger representa loggers especializados por dominio
type DomainLogger interface {
	Logger

	Domain() string
}

// HTTPLogger especializado para logs relacionados con HTTP
type HTTPLogger interface {
	DomainLogger

	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// ExternalAPILogger especializado para logs de APIs externas
type ExternalAPILogger interface {
	DomainLogger

	RequestStarted(ctx context.Context, service, endpoint, method string)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64)
}

// BusinessLogger especializado para la valorización de portafolios
type BusinessLogger interface {
	DomainLogger

	ValuationRequested(ctx context.Context, fiat string, assets []string)
	ValuationCompleted(ctx context.Context, fiat string, assetCount int, total float64)
	ValuationFailed(ctx context.Context, fiat string, kind string, err error)
	ValidationFailed(ctx context.Context, input string, reason string)
}

// SecurityLogger especializado para logs relacionados con seguridad
type SecurityLogger interface {
	DomainLogger

	InvalidRequest(ctx context.Context, clientIP string, reason string)
	SuspiciousActivity(ctx context.Context, clientIP string, activity string)
	PanicRecovered(ctx context.Context, path string, recovered interface{})
}
