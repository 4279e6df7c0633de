package middleware

import (
	"encoding/json"
	"net/http"
	"portfolio-value-service/internal/application/dto"
	"portfolio-value-service/internal/domain/entities"
	"portfolio-value-service/internal/infrastructure/logging"
)

// ErrorKindHeader expone el tipo de falla sin alterar el cuerpo de error
const ErrorKindHeader = "X-Error-Kind"

// RecoveryMiddleware turns a handler panic into the uniform 500 error body
// with the valuation label. http.ErrAbortHandler is re-raised so net/http can
// abort the connection.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return RecoveryWithLabel(dto.ErrorLabelValuation)(next)
}

// RecoveryWithLabel es RecoveryMiddleware con la etiqueta de error de la ruta
func RecoveryWithLabel(label string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logging.Security().PanicRecovered(r.Context(), r.URL.Path, recovered)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(ErrorKindHeader, string(entities.KindUnknownFailure))
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(dto.NewErrorResponse(label, entities.UnknownErrorMessage))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
