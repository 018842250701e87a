package httpclient

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LogRequests returns a middleware that logs every outgoing request at debug
// level with method, URL, status, and duration. Transport failures are
// logged at warn level.
func LogRequests(lg *zap.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				lg.Warn("Request failed", append(fields, zap.Error(err))...)
				return nil, err
			}
			lg.Debug("Request", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}
