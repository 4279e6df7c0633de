package middleware

import (
	"net/http"
	"portfolio-value-service/internal/infrastructure/logging"
	"strings"
)

// suspiciousBodyBytes marca cuerpos anormalmente grandes para un portafolio
const suspiciousBodyBytes = 1 << 20

// LoggingMiddleware complements RequestTracingMiddleware with debug and security logging.
// It must run inside the tracing middleware so the request id is already in context.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path, r.UserAgent(), getRemoteIP(r))

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers":        extractImportantHeaders(r),
			"query":          r.URL.RawQuery,
			"content_length": r.ContentLength,
		})

		if reason := suspiciousReason(r); reason != "" {
			logging.Security().SuspiciousActivity(ctx, getRemoteIP(r), reason)
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders extracts relevant headers for logging
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)

	// Sin headers sensibles
	importantHeaders := []string{
		"Content-Type",
		"Accept",
		"Accept-Encoding",
		"X-Forwarded-For",
		"X-Real-IP",
	}

	for _, header := range importantHeaders {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}

	return headers
}

var suspiciousPatterns = []string{
	"../",
	"<script",
	"select ",
	"union ",
	"drop ",
	"exec(",
	"eval(",
}

// suspiciousReason detecta patrones sospechosos en path y query. Vacío si no hay nada.
func suspiciousReason(r *http.Request) string {
	target := strings.ToLower(r.URL.Path + "?" + r.URL.RawQuery)

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(target, pattern) {
			return "unusual_request_pattern"
		}
	}

	if r.ContentLength > suspiciousBodyBytes {
		return "oversized_body"
	}

	return ""
}
