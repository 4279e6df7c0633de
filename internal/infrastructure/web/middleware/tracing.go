package middleware

import (
	"net/http"
	"portfolio-value-service/internal/infrastructure/logging"
	"strings"
	"time"
)

// ResponseWriter wrapper to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func (rw *responseWriter) status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// RequestTracingMiddleware adds request tracing and structured logging
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Reuse the caller's request id when present
		requestID := logging.RequestIDFromRequest(r)

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set(logging.RequestIDHeader, requestID)

		wrapped := &responseWriter{ResponseWriter: w}

		method := r.Method
		path := r.URL.Path

		logging.Info(ctx, "HTTP request started", logging.Fields{
			"http_method":    method,
			"http_path":      path,
			"user_agent":     r.Header.Get("User-Agent"),
			"remote_ip":      getRemoteIP(r),
			"content_length": r.ContentLength,
		})

		r = r.WithContext(ctx)
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(startTime).Nanoseconds()) / 1e6
		logging.HTTPRequest(ctx, method, path, wrapped.status(), durationMs)
	})
}

// getRemoteIP extrae la IP real del cliente considerando proxies
func getRemoteIP(r *http.Request) string {
	if xForwardedFor := r.Header.Get("X-Forwarded-For"); xForwardedFor != "" {
		// X-Forwarded-For puede contener múltiples IPs, tomar la primera
		if idx := strings.Index(xForwardedFor, ","); idx != -1 {
			return strings.TrimSpace(xForwardedFor[:idx])
		}
		return xForwardedFor
	}

	if xRealIP := r.Header.Get("X-Real-IP"); xRealIP != "" {
		return xRealIP
	}

	return r.RemoteAddr
}
