package httpclient

import (
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryConfig controls the retry middleware.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int
	// BaseDelay is the first backoff delay; each further attempt doubles it
	// and adds jitter.
	BaseDelay time.Duration
}

// Retry returns a middleware that retries transport errors and 5xx responses
// with exponential backoff. Only GET and HEAD requests are retried; anything
// with a body could be applied twice by the remote.
func Retry(cfg RetryConfig) Middleware {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next.RoundTrip(req)
			}

			var (
				resp *http.Response
				err  error
			)
			for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
				resp, err = next.RoundTrip(req)
				if err == nil && resp.StatusCode < http.StatusInternalServerError {
					return resp, nil
				}
				if attempt == cfg.MaxAttempts {
					break
				}
				if resp != nil {
					resp.Body.Close()
				}

				select {
				case <-req.Context().Done():
					return nil, req.Context().Err()
				case <-time.After(backoff(cfg.BaseDelay, attempt)):
				}
			}
			return resp, err
		})
	}
}

// backoff doubles the delay per attempt and adds up to 50% jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	return d + time.Duration(rand.Int64N(int64(d/2)+1))
}
