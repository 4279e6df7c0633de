package logging

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// RequestIDHeader is the header used to propagate request ids
const RequestIDHeader = "X-Request-ID"

const maxIncomingRequestIDLength = 128

// GenerateRequestID creates a new random request ID
func GenerateRequestID() string {
	return uuid.NewString()
}

// RequestIDFromRequest reuses a caller supplied X-Request-ID when it looks sane,
// otherwise generates a fresh one.
func RequestIDFromRequest(r *http.Request) string {
	incoming := strings.TrimSpace(r.Header.Get(RequestIDHeader))
	if incoming == "" || len(incoming) > maxIncomingRequestIDLength || strings.ContainsAny(incoming, "\r\n") {
		return GenerateRequestID()
	}
	return incoming
}
