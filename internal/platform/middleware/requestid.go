package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"vayva/pkg/requestcontext"
)

// RequestID assigns a request ID (honoring an inbound X-Request-ID header)
// and freezes the request time so every layer observes the same clock value.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
