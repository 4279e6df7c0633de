package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// HTTPMetricsMiddleware collects HTTP metrics for Prometheus.
// Registered through mux.Router.Use it labels by route template.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		RecordHTTPRequest(
			r.Method,
			routeLabel(r),
			recorder.status(),
			time.Since(startTime).Seconds(),
			r.ContentLength,
			recorder.written,
		)
	})
}

// statusRecorder captures status code and body size
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

func (rw *statusRecorder) status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}

// routeLabel prefers the matched mux route template and falls back to normalizePath
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil && tpl != "" {
			return normalizePath(tpl)
		}
	}
	return normalizePath(r.URL.Path)
}

// normalizePath maps URL paths onto a fixed label set to keep metric cardinality bounded
func normalizePath(path string) string {
	if path == "/" {
		return "/"
	}

	path = strings.TrimSuffix(path, "/")

	switch {
	case path == "/health",
		path == "/ready",
		path == "/metrics",
		path == "/getPortfolioValue",
		path == "/api/v1/portfolio/value",
		path == "/api/v1/currencies",
		path == "/api/v1/markets":
		return path
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger/*"
	case strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	case strings.HasPrefix(path, "/api/"):
		return "/api/*"
	default:
		return "/unknown"
	}
}
