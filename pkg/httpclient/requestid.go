package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID returns a middleware that stamps a unique X-Request-ID header on
// every outgoing request that does not already carry one, so individual
// calls can be correlated with server-side logs.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get("X-Request-ID") == "" {
				// RoundTrippers must not mutate the caller's request.
				req = req.Clone(req.Context())
				req.Header.Set("X-Request-ID", uuid.New().String())
			}
			return next.RoundTrip(req)
		})
	}
}
