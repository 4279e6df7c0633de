package logging

import (
	"context"
)

// Funciones globales de conveniencia. Usan el logger global por defecto.

// Debug logs a debug message using the global logger
func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

// Info logs an info message using the global logger
func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

// Warn logs a warning message using the global logger
func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

// Error logs an error message using the global logger
func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

// WarnWithError logs a warning message with error details using the global logger
func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

// ErrorWithError logs an error message with error details using the global logger
func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

// HTTPRequest logs HTTP request completion using the global HTTP logger
func HTTPRequest(ctx context.Context, method, path string, statusCode int, durationMs float64) {
	GetGlobalLoggers().HTTP.RequestCompleted(ctx, method, path, statusCode, durationMs)
}

// ExternalRequest logs external API request details using the global external API logger
func ExternalRequest(ctx context.Context, service, endpoint string, durationMs float64, statusCode int) {
	GetGlobalLoggers().ExternalAPI.RequestCompleted(ctx, service, endpoint, statusCode, durationMs)
}

// HTTP retorna el logger HTTP global
func HTTP() HTTPLogger {
	return GetGlobalLoggers().HTTP
}

// ExternalAPI retorna el logger de API externa global
func ExternalAPI() ExternalAPILogger {
	return GetGlobalLoggers().ExternalAPI
}

// Business retorna el logger de negocio global
func Business() BusinessLogger {
	return GetGlobalLoggers().Business
}

// Security retorna el logger de seguridad global
func Security() SecurityLogger {
	return GetGlobalLoggers().Security
}
